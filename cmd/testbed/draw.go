package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	playrho "github.com/gmaf/PlayRho"
)

var (
	colorStatic    = color.RGBA{R: 0x5f, G: 0xe3, B: 0x5f, A: 0xff}
	colorKinematic = color.RGBA{R: 0x5f, G: 0x8f, B: 0xe3, A: 0xff}
	colorDynamic   = color.RGBA{R: 0xe3, G: 0xa0, B: 0x5f, A: 0xff}
	colorAsleep    = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	colorSensor    = color.RGBA{R: 0xb0, G: 0x5f, B: 0xe3, A: 0xff}
)

func drawWorld(screen *ebiten.Image, world *playrho.World, cam *camera) {
	for _, bodyID := range world.GetBodies() {
		xf, err := world.GetTransform(bodyID)
		if err != nil {
			continue
		}
		clr := bodyColor(world, bodyID)
		fixtures, _ := world.GetFixtures(bodyID)
		for _, fixtureID := range fixtures {
			shape, err := world.GetShape(fixtureID)
			if err != nil {
				continue
			}
			if sensor, _ := world.IsSensor(fixtureID); sensor {
				drawShape(screen, shape, xf, cam, colorSensor)
			} else {
				drawShape(screen, shape, xf, cam, clr)
			}
		}
	}
}

func bodyColor(world *playrho.World, id playrho.BodyID) color.RGBA {
	bodyType, _ := world.GetBodyType(id)
	switch bodyType {
	case playrho.BodyType.E_static:
		return colorStatic
	case playrho.BodyType.E_kinematic:
		return colorKinematic
	default:
		if awake, _ := world.IsAwake(id); !awake {
			return colorAsleep
		}
		return colorDynamic
	}
}

func drawShape(screen *ebiten.Image, shape playrho.Shape, xf playrho.Transform, cam *camera, clr color.RGBA) {
	switch conf := shape.(type) {
	case playrho.DiskShapeConf:
		center := playrho.TransformVec2Mul(xf, conf.Location)
		cx, cy := cam.toScreen(center)
		vector.StrokeCircle(screen, cx, cy, cam.toPixels(conf.VertexRadius), 1, clr, true)
		// Radius line so rotation is visible.
		edge := playrho.TransformVec2Mul(xf, playrho.Vec2Add(conf.Location, playrho.MakeVec2(conf.VertexRadius, 0)))
		ex, ey := cam.toScreen(edge)
		vector.StrokeLine(screen, cx, cy, ex, ey, 1, clr, true)
	case playrho.PolygonShapeConf:
		for i := 0; i < conf.Count; i++ {
			v0 := playrho.TransformVec2Mul(xf, conf.Vertices[i])
			v1 := playrho.TransformVec2Mul(xf, conf.Vertices[(i+1)%conf.Count])
			x0, y0 := cam.toScreen(v0)
			x1, y1 := cam.toScreen(v1)
			vector.StrokeLine(screen, x0, y0, x1, y1, 1, clr, true)
		}
	case playrho.EdgeShapeConf:
		v1 := playrho.TransformVec2Mul(xf, conf.Vertex1)
		v2 := playrho.TransformVec2Mul(xf, conf.Vertex2)
		x0, y0 := cam.toScreen(v1)
		x1, y1 := cam.toScreen(v2)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, clr, true)
	case playrho.ChainShapeConf:
		for i := 0; i+1 < len(conf.Vertices); i++ {
			v0 := playrho.TransformVec2Mul(xf, conf.Vertices[i])
			v1 := playrho.TransformVec2Mul(xf, conf.Vertices[i+1])
			x0, y0 := cam.toScreen(v0)
			x1, y1 := cam.toScreen(v1)
			vector.StrokeLine(screen, x0, y0, x1, y1, 1, clr, true)
		}
	}
}
