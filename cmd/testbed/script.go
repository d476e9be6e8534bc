package main

import (
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	playrho "github.com/gmaf/PlayRho"
)

// stepScript runs a tengo script once per simulation step, before the
// world steps. The script sees `dt` and `elapsed` plus a small engine
// API addressing bodies by their scene name:
//
//	set_velocity(name, vx, vy)      set_angular_velocity(name, w)
//	get_position(name) -> [x, y]    get_velocity(name) -> [vx, vy]
//	apply_impulse(name, ix, iy)     set_awake(name)
type stepScript struct {
	path     string
	compiled *tengo.Compiled
}

func loadStepScript(path string, scene *Scene) (*stepScript, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	_ = script.Add("dt", 0.0)
	_ = script.Add("elapsed", 0.0)
	for name, fn := range sceneBuiltins(scene) {
		_ = script.Add(name, fn)
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	return &stepScript{path: path, compiled: compiled}, nil
}

func (s *stepScript) run(dt, elapsed float64) error {
	if err := s.compiled.Set("dt", dt); err != nil {
		return err
	}
	if err := s.compiled.Set("elapsed", elapsed); err != nil {
		return err
	}
	return s.compiled.Run()
}

func sceneBuiltins(scene *Scene) map[string]tengo.Object {
	lookup := func(args []tengo.Object) (playrho.BodyID, bool) {
		if len(args) < 1 {
			return playrho.InvalidBodyID, false
		}
		name, ok := tengo.ToString(args[0])
		if !ok {
			return playrho.InvalidBodyID, false
		}
		id, ok := scene.Bodies[name]
		return id, ok
	}
	floatArg := func(args []tengo.Object, index int) float64 {
		if index >= len(args) {
			return 0
		}
		value, _ := tengo.ToFloat64(args[index])
		return value
	}
	pair := func(x, y float64) tengo.Object {
		return &tengo.Array{Value: []tengo.Object{
			&tengo.Float{Value: x},
			&tengo.Float{Value: y},
		}}
	}

	return map[string]tengo.Object{
		"set_velocity": &tengo.UserFunction{Name: "set_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
			id, ok := lookup(args)
			if !ok {
				return tengo.FalseValue, nil
			}
			velocity, err := scene.World.GetVelocity(id)
			if err != nil {
				return tengo.FalseValue, nil
			}
			velocity.Linear = playrho.MakeVec2(floatArg(args, 1), floatArg(args, 2))
			if err := scene.World.SetVelocity(id, velocity); err != nil {
				return tengo.FalseValue, nil
			}
			return tengo.TrueValue, nil
		}},
		"set_angular_velocity": &tengo.UserFunction{Name: "set_angular_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
			id, ok := lookup(args)
			if !ok {
				return tengo.FalseValue, nil
			}
			velocity, err := scene.World.GetVelocity(id)
			if err != nil {
				return tengo.FalseValue, nil
			}
			velocity.Angular = floatArg(args, 1)
			if err := scene.World.SetVelocity(id, velocity); err != nil {
				return tengo.FalseValue, nil
			}
			return tengo.TrueValue, nil
		}},
		"get_position": &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
			id, ok := lookup(args)
			if !ok {
				return pair(0, 0), nil
			}
			location, err := scene.World.GetLocation(id)
			if err != nil {
				return pair(0, 0), nil
			}
			return pair(location.X, location.Y), nil
		}},
		"get_velocity": &tengo.UserFunction{Name: "get_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
			id, ok := lookup(args)
			if !ok {
				return pair(0, 0), nil
			}
			velocity, err := scene.World.GetVelocity(id)
			if err != nil {
				return pair(0, 0), nil
			}
			return pair(velocity.Linear.X, velocity.Linear.Y), nil
		}},
		"apply_impulse": &tengo.UserFunction{Name: "apply_impulse", Value: func(args ...tengo.Object) (tengo.Object, error) {
			id, ok := lookup(args)
			if !ok {
				return tengo.FalseValue, nil
			}
			center, err := scene.World.GetWorldCenter(id)
			if err != nil {
				return tengo.FalseValue, nil
			}
			impulse := playrho.MakeVec2(floatArg(args, 1), floatArg(args, 2))
			if err := scene.World.ApplyLinearImpulse(id, impulse, center); err != nil {
				return tengo.FalseValue, nil
			}
			return tengo.TrueValue, nil
		}},
		"set_awake": &tengo.UserFunction{Name: "set_awake", Value: func(args ...tengo.Object) (tengo.Object, error) {
			id, ok := lookup(args)
			if !ok {
				return tengo.FalseValue, nil
			}
			if err := scene.World.SetAwake(id); err != nil {
				return tengo.FalseValue, nil
			}
			return tengo.TrueValue, nil
		}},
	}
}
