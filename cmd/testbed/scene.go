package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	playrho "github.com/gmaf/PlayRho"
)

// sceneFile is the YAML document a scene is loaded from. Coordinates are
// world meters; pairs are [x, y].
type sceneFile struct {
	Name   string      `yaml:"name"`
	Camera cameraSpec  `yaml:"camera"`
	Script string      `yaml:"script"`
	Bodies []bodySpec  `yaml:"bodies"`
	Joints []jointSpec `yaml:"joints"`
}

type cameraSpec struct {
	Center []float64 `yaml:"center"`
	Scale  float64   `yaml:"scale"`
}

type bodySpec struct {
	Name                string        `yaml:"name"`
	Type                string        `yaml:"type"`
	Position            []float64     `yaml:"position"`
	Angle               float64       `yaml:"angle"`
	LinearVelocity      []float64     `yaml:"linear_velocity"`
	AngularVelocity     float64       `yaml:"angular_velocity"`
	Acceleration        []float64     `yaml:"acceleration"`
	AngularAcceleration float64       `yaml:"angular_acceleration"`
	Bullet              bool          `yaml:"bullet"`
	FixedRotation       bool          `yaml:"fixed_rotation"`
	AllowSleep          *bool         `yaml:"allow_sleep"`
	Fixtures            []fixtureSpec `yaml:"fixtures"`
}

type fixtureSpec struct {
	Shape       string      `yaml:"shape"`
	Radius      float64     `yaml:"radius"`
	Center      []float64   `yaml:"center"`
	Box         []float64   `yaml:"box"`
	Vertices    [][]float64 `yaml:"vertices"`
	V1          []float64   `yaml:"v1"`
	V2          []float64   `yaml:"v2"`
	Density     *float64    `yaml:"density"`
	Friction    *float64    `yaml:"friction"`
	Restitution float64     `yaml:"restitution"`
	Sensor      bool        `yaml:"sensor"`
}

type jointSpec struct {
	Type             string    `yaml:"type"`
	BodyA            string    `yaml:"body_a"`
	BodyB            string    `yaml:"body_b"`
	AnchorA          []float64 `yaml:"anchor_a"`
	AnchorB          []float64 `yaml:"anchor_b"`
	Axis             []float64 `yaml:"axis"`
	Length           float64   `yaml:"length"`
	Frequency        float64   `yaml:"frequency"`
	DampingRatio     float64   `yaml:"damping_ratio"`
	CollideConnected bool      `yaml:"collide_connected"`
	EnableMotor      bool      `yaml:"enable_motor"`
	MotorSpeed       float64   `yaml:"motor_speed"`
	MaxMotorTorque   float64   `yaml:"max_motor_torque"`
	MaxMotorForce    float64   `yaml:"max_motor_force"`
}

// Scene is a built world plus the name index the HUD and scripts use.
type Scene struct {
	Name       string
	World      *playrho.World
	Bodies     map[string]playrho.BodyID
	ScriptPath string
	Camera     cameraSpec
}

func vec2(pair []float64) playrho.Vec2 {
	if len(pair) < 2 {
		return playrho.Vec2{}
	}
	return playrho.MakeVec2(pair[0], pair[1])
}

// LoadScene reads a YAML scene file and builds a world from it. A script
// path in the file is resolved relative to the scene file's directory.
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var spec sceneFile
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	world := playrho.MakeWorld(playrho.MakeWorldConf())
	scene := &Scene{
		Name:   spec.Name,
		World:  &world,
		Bodies: map[string]playrho.BodyID{},
		Camera: spec.Camera,
	}
	if spec.Script != "" {
		scene.ScriptPath = filepath.Join(filepath.Dir(path), spec.Script)
	}
	if scene.Camera.Scale == 0 {
		scene.Camera.Scale = 20
	}

	for i, body := range spec.Bodies {
		id, err := buildBody(&world, body)
		if err != nil {
			return nil, fmt.Errorf("body %d (%q): %w", i, body.Name, err)
		}
		if body.Name != "" {
			scene.Bodies[body.Name] = id
		}
	}
	for i, joint := range spec.Joints {
		if err := buildJoint(&world, scene.Bodies, joint); err != nil {
			return nil, fmt.Errorf("joint %d: %w", i, err)
		}
	}
	return scene, nil
}

func buildBody(world *playrho.World, spec bodySpec) (playrho.BodyID, error) {
	conf := playrho.MakeBodyConf().
		UseLocation(vec2(spec.Position)).
		UseAngle(spec.Angle).
		UseLinearVelocity(vec2(spec.LinearVelocity)).
		UseAngularVelocity(spec.AngularVelocity).
		UseLinearAcceleration(vec2(spec.Acceleration)).
		UseAngularAcceleration(spec.AngularAcceleration).
		UseBullet(spec.Bullet).
		UseFixedRotation(spec.FixedRotation)
	switch spec.Type {
	case "", "static":
		conf = conf.UseType(playrho.BodyType.E_static)
	case "kinematic":
		conf = conf.UseType(playrho.BodyType.E_kinematic)
	case "dynamic":
		conf = conf.UseType(playrho.BodyType.E_dynamic)
	default:
		return playrho.InvalidBodyID, fmt.Errorf("unknown body type %q", spec.Type)
	}
	if spec.AllowSleep != nil {
		conf = conf.UseAllowSleep(*spec.AllowSleep)
	}

	id, err := world.CreateBody(conf)
	if err != nil {
		return playrho.InvalidBodyID, err
	}
	for i, fixture := range spec.Fixtures {
		shape, err := buildShape(fixture)
		if err != nil {
			return playrho.InvalidBodyID, fmt.Errorf("fixture %d: %w", i, err)
		}
		fixtureConf := playrho.MakeFixtureConf()
		fixtureConf.IsSensor = fixture.Sensor
		if _, err := world.CreateFixture(id, shape, fixtureConf, true); err != nil {
			return playrho.InvalidBodyID, fmt.Errorf("fixture %d: %w", i, err)
		}
	}
	return id, nil
}

func buildShape(spec fixtureSpec) (playrho.Shape, error) {
	density := 1.0
	if spec.Density != nil {
		density = *spec.Density
	}
	friction := 0.2
	if spec.Friction != nil {
		friction = *spec.Friction
	}
	switch spec.Shape {
	case "disk":
		conf := playrho.MakeDiskShapeConf().
			UseRadius(spec.Radius).
			UseLocation(vec2(spec.Center)).
			UseDensity(density).
			UseFriction(friction).
			UseRestitution(spec.Restitution)
		return conf, nil
	case "box":
		if len(spec.Box) < 2 {
			return nil, fmt.Errorf("box shape needs box: [hx, hy]")
		}
		conf := playrho.MakePolygonShapeConf().
			UseDensity(density).
			UseFriction(friction).
			UseRestitution(spec.Restitution).
			SetAsBox(spec.Box[0], spec.Box[1])
		return conf, nil
	case "polygon":
		vertices := make([]playrho.Vec2, 0, len(spec.Vertices))
		for _, pair := range spec.Vertices {
			vertices = append(vertices, vec2(pair))
		}
		conf := playrho.MakePolygonShapeConf().
			UseDensity(density).
			UseFriction(friction).
			UseRestitution(spec.Restitution).
			Set(vertices)
		return conf, nil
	case "edge":
		conf := playrho.MakeEdgeShapeConf().
			Set(vec2(spec.V1), vec2(spec.V2)).
			UseFriction(friction).
			UseRestitution(spec.Restitution)
		return conf, nil
	default:
		return nil, fmt.Errorf("unknown shape %q", spec.Shape)
	}
}

func buildJoint(world *playrho.World, bodies map[string]playrho.BodyID, spec jointSpec) error {
	bodyA, ok := bodies[spec.BodyA]
	if !ok {
		return fmt.Errorf("unknown body_a %q", spec.BodyA)
	}
	bodyB, ok := bodies[spec.BodyB]
	if !ok {
		return fmt.Errorf("unknown body_b %q", spec.BodyB)
	}

	var conf playrho.JointConf
	switch spec.Type {
	case "distance":
		length := spec.Length
		if length == 0 {
			length = 1
		}
		conf = playrho.MakeDistanceJointConf(bodyA, bodyB).
			UseLocalAnchorA(vec2(spec.AnchorA)).
			UseLocalAnchorB(vec2(spec.AnchorB)).
			UseLength(length).
			UseFrequency(spec.Frequency).
			UseDampingRatio(spec.DampingRatio).
			UseCollideConnected(spec.CollideConnected)
	case "revolute":
		conf = playrho.MakeRevoluteJointConf(bodyA, bodyB).
			UseLocalAnchorA(vec2(spec.AnchorA)).
			UseLocalAnchorB(vec2(spec.AnchorB)).
			UseEnableMotor(spec.EnableMotor).
			UseMotorSpeed(spec.MotorSpeed).
			UseMaxMotorTorque(spec.MaxMotorTorque).
			UseCollideConnected(spec.CollideConnected)
	case "prismatic":
		axis := vec2(spec.Axis)
		if axis == (playrho.Vec2{}) {
			axis = playrho.MakeVec2(1, 0)
		}
		conf = playrho.MakePrismaticJointConf(bodyA, bodyB).
			UseLocalAnchorA(vec2(spec.AnchorA)).
			UseLocalAnchorB(vec2(spec.AnchorB)).
			UseLocalAxisA(axis).
			UseEnableMotor(spec.EnableMotor).
			UseMotorSpeed(spec.MotorSpeed).
			UseMaxMotorForce(spec.MaxMotorForce).
			UseCollideConnected(spec.CollideConnected)
	default:
		return fmt.Errorf("unknown joint type %q", spec.Type)
	}
	_, err := world.CreateJoint(conf)
	return err
}
