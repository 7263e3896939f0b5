package world

// Sprite is a billboard object standing in the map. It always faces the
// camera; the renderer scales it by distance like a wall slice.
type Sprite struct {
	X, Y    float64 // position in map units
	Texture int     // 1-based index into the level's sprite textures
}
