package scene

// NewCornellScene creates a Cornell box built from planes with a triangle back wall.
// The box has no ceiling: shadow rays are not limited to the light distance, so a
// ceiling above the light would put the whole box in shadow.
func NewCornellScene() *Scene {
	const boxSize = 555.0

	world := must(NewWorld(pt(278, 278, 278), vec(0, 0, 0), 0.1, 5000))

	white := solid(vec(186, 186, 186), 0, 1)
	red := solid(vec(166, 13, 13), 0, 1)
	green := solid(vec(31, 115, 38), 0, 1)
	mirror := solid(vec(230, 230, 230), 0.9, 300)
	matte := solid(vec(200, 180, 120), 0.05, 8)

	populate(world,
		[]*Body{
			plane(pt(0, 0, 0), vec(0, 1, 0), white),       // floor
			plane(pt(0, 0, 0), vec(1, 0, 0), green),       // left wall
			plane(pt(boxSize, 0, 0), vec(-1, 0, 0), red),  // right wall
			triangle(pt(0, 0, boxSize), pt(boxSize, 0, boxSize), pt(boxSize, boxSize, boxSize), white),
			triangle(pt(0, 0, boxSize), pt(boxSize, boxSize, boxSize), pt(0, boxSize, boxSize), white),
			sphere(pt(180, 100, 370), 100, mirror),
			sphere(pt(390, 90, 200), 90, matte),
		},
		light(pt(278, 900, 200), vec(255, 250, 240), 1),
	)

	return &Scene{
		Name:           "cornell",
		World:          world,
		Camera:         CameraConfig{Width: 400, Height: 400, FieldOfView: 40},
		Pictures:       []Picture{{Eye: pt(278, 278, -800), Up: vec(0, 1, 0)}},
		RecursionDepth: 4,
	}
}
