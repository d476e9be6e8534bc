package playrho

import (
	"math"
)

/// Time of impact configuration.
/// These parameters effect time of impact calculations by limiting the
/// definitions of time and impact. If total radius is expressed as TR, and
/// target depth as TD, then: the max target distance is (TR - TD) + tolerance;
/// and the min target distance is (TR - TD) - tolerance.
type ToiConf struct {
	TMax float64

	/// Targeted depth of impact.
	TargetDepth float64

	Tolerance float64

	/// Maximum number of root finder iterations per push back iteration.
	MaxRootIters int

	/// Maximum number of outer loop iterations.
	MaxToiIters int
}

func MakeToiConf() ToiConf {
	return ToiConf{
		TMax:         1.0,
		TargetDepth:  DefaultLinearSlop * 3,
		Tolerance:    DefaultLinearSlop / 4,
		MaxRootIters: DefaultMaxToiRootIters,
		MaxToiIters:  DefaultMaxToiIters,
	}
}

func (conf ToiConf) UseTimeMax(value float64) ToiConf {
	conf.TMax = value
	return conf
}

func (conf ToiConf) UseTargetDepth(value float64) ToiConf {
	conf.TargetDepth = value
	return conf
}

func (conf ToiConf) UseTolerance(value float64) ToiConf {
	conf.Tolerance = value
	return conf
}

func (conf ToiConf) UseMaxRootIters(value int) ToiConf {
	conf.MaxRootIters = value
	return conf
}

func (conf ToiConf) UseMaxToiIters(value int) ToiConf {
	conf.MaxToiIters = value
	return conf
}

/// Input parameters for TimeOfImpact.
type TOIInput struct {
	ProxyA DistanceProxy
	ProxyB DistanceProxy
	SweepA Sweep
	SweepB Sweep
}

func MakeTOIInput() TOIInput {
	return TOIInput{}
}

var TOIOutput_State = struct {
	E_unknown    uint8
	E_failed     uint8
	E_overlapped uint8
	E_touching   uint8
	E_separated  uint8
}{
	E_unknown:    1,
	E_failed:     2,
	E_overlapped: 3,
	E_touching:   4,
	E_separated:  5,
}

/// Per-call iteration statistics for TimeOfImpact.
type TOIStats struct {
	/// Number of outer loop iterations taken.
	ToiIters int

	SumDistIters int
	MaxDistIters int

	SumRootIters int
	MaxRootIters int
}

/// Output data for TimeOfImpact.
type TOIOutput struct {
	State uint8
	T     float64
	Stats TOIStats
}

func MakeTOIOutput() TOIOutput {
	return TOIOutput{State: TOIOutput_State.E_unknown}
}

var SeparationFunction_Type = struct {
	E_points uint8
	E_faceA  uint8
	E_faceB  uint8
}{
	E_points: 0,
	E_faceA:  1,
	E_faceB:  2,
}

type SeparationFunction struct {
	M_proxyA           *DistanceProxy
	M_proxyB           *DistanceProxy
	M_sweepA, M_sweepB Sweep
	M_type             uint8
	M_localPoint       Vec2
	M_axis             Vec2
}

func (sepfunc *SeparationFunction) Initialize(cache *SimplexCache, proxyA *DistanceProxy, sweepA Sweep, proxyB *DistanceProxy, sweepB Sweep, t1 float64) float64 {

	sepfunc.M_proxyA = proxyA
	sepfunc.M_proxyB = proxyB
	count := cache.Count
	assert(0 < count && count < 3)

	sepfunc.M_sweepA = sweepA
	sepfunc.M_sweepB = sweepB

	xfA := sepfunc.M_sweepA.GetTransform(t1)
	xfB := sepfunc.M_sweepB.GetTransform(t1)

	if count == 1 {
		sepfunc.M_type = SeparationFunction_Type.E_points
		localPointA := sepfunc.M_proxyA.GetVertex(cache.IndexA[0])
		localPointB := sepfunc.M_proxyB.GetVertex(cache.IndexB[0])
		pointA := TransformVec2Mul(xfA, localPointA)
		pointB := TransformVec2Mul(xfB, localPointB)
		sepfunc.M_axis = Vec2Sub(pointB, pointA)
		s := sepfunc.M_axis.Normalize()
		return s
	} else if cache.IndexA[0] == cache.IndexA[1] {
		// Two points on B and one on A.
		sepfunc.M_type = SeparationFunction_Type.E_faceB
		localPointB1 := proxyB.GetVertex(cache.IndexB[0])
		localPointB2 := proxyB.GetVertex(cache.IndexB[1])

		sepfunc.M_axis = Vec2CrossVectorScalar(
			Vec2Sub(localPointB2, localPointB1),
			1.0,
		)

		sepfunc.M_axis.Normalize()
		normal := RotVec2Mul(xfB.Q, sepfunc.M_axis)

		sepfunc.M_localPoint = Vec2MulScalar(0.5, Vec2Add(localPointB1, localPointB2))
		pointB := TransformVec2Mul(xfB, sepfunc.M_localPoint)

		localPointA := proxyA.GetVertex(cache.IndexA[0])
		pointA := TransformVec2Mul(xfA, localPointA)

		s := Vec2Dot(Vec2Sub(pointA, pointB), normal)
		if s < 0.0 {
			sepfunc.M_axis = sepfunc.M_axis.OperatorNegate()
			s = -s
		}

		return s
	} else {
		// Two points on A and one or two points on B.
		sepfunc.M_type = SeparationFunction_Type.E_faceA
		localPointA1 := sepfunc.M_proxyA.GetVertex(cache.IndexA[0])
		localPointA2 := sepfunc.M_proxyA.GetVertex(cache.IndexA[1])

		sepfunc.M_axis = Vec2CrossVectorScalar(Vec2Sub(localPointA2, localPointA1), 1.0)
		sepfunc.M_axis.Normalize()
		normal := RotVec2Mul(xfA.Q, sepfunc.M_axis)

		sepfunc.M_localPoint = Vec2MulScalar(0.5, Vec2Add(localPointA1, localPointA2))
		pointA := TransformVec2Mul(xfA, sepfunc.M_localPoint)

		localPointB := sepfunc.M_proxyB.GetVertex(cache.IndexB[0])
		pointB := TransformVec2Mul(xfB, localPointB)

		s := Vec2Dot(Vec2Sub(pointB, pointA), normal)
		if s < 0.0 {
			sepfunc.M_axis = sepfunc.M_axis.OperatorNegate()
			s = -s
		}

		return s
	}
}

func (sepfunc *SeparationFunction) FindMinSeparation(indexA *int, indexB *int, t float64) float64 {

	xfA := sepfunc.M_sweepA.GetTransform(t)
	xfB := sepfunc.M_sweepB.GetTransform(t)

	switch sepfunc.M_type {
	case SeparationFunction_Type.E_points:
		{
			axisA := RotVec2MulT(xfA.Q, sepfunc.M_axis)
			axisB := RotVec2MulT(xfB.Q, sepfunc.M_axis.OperatorNegate())

			*indexA = sepfunc.M_proxyA.GetSupport(axisA)
			*indexB = sepfunc.M_proxyB.GetSupport(axisB)

			localPointA := sepfunc.M_proxyA.GetVertex(*indexA)
			localPointB := sepfunc.M_proxyB.GetVertex(*indexB)

			pointA := TransformVec2Mul(xfA, localPointA)
			pointB := TransformVec2Mul(xfB, localPointB)

			separation := Vec2Dot(Vec2Sub(pointB, pointA), sepfunc.M_axis)
			return separation
		}

	case SeparationFunction_Type.E_faceA:
		{
			normal := RotVec2Mul(xfA.Q, sepfunc.M_axis)
			pointA := TransformVec2Mul(xfA, sepfunc.M_localPoint)

			axisB := RotVec2MulT(xfB.Q, normal.OperatorNegate())

			*indexA = -1
			*indexB = sepfunc.M_proxyB.GetSupport(axisB)

			localPointB := sepfunc.M_proxyB.GetVertex(*indexB)
			pointB := TransformVec2Mul(xfB, localPointB)

			separation := Vec2Dot(Vec2Sub(pointB, pointA), normal)
			return separation
		}

	case SeparationFunction_Type.E_faceB:
		{
			normal := RotVec2Mul(xfB.Q, sepfunc.M_axis)
			pointB := TransformVec2Mul(xfB, sepfunc.M_localPoint)

			axisA := RotVec2MulT(xfA.Q, normal.OperatorNegate())

			*indexB = -1
			*indexA = sepfunc.M_proxyA.GetSupport(axisA)

			localPointA := sepfunc.M_proxyA.GetVertex(*indexA)
			pointA := TransformVec2Mul(xfA, localPointA)

			separation := Vec2Dot(Vec2Sub(pointA, pointB), normal)
			return separation
		}

	default:
		assert(false)
		*indexA = -1
		*indexB = -1
		return 0.0
	}
}

func (sepfunc *SeparationFunction) Evaluate(indexA int, indexB int, t float64) float64 {

	xfA := sepfunc.M_sweepA.GetTransform(t)
	xfB := sepfunc.M_sweepB.GetTransform(t)

	switch sepfunc.M_type {
	case SeparationFunction_Type.E_points:
		{
			localPointA := sepfunc.M_proxyA.GetVertex(indexA)
			localPointB := sepfunc.M_proxyB.GetVertex(indexB)

			pointA := TransformVec2Mul(xfA, localPointA)
			pointB := TransformVec2Mul(xfB, localPointB)
			separation := Vec2Dot(Vec2Sub(pointB, pointA), sepfunc.M_axis)

			return separation
		}

	case SeparationFunction_Type.E_faceA:
		{
			normal := RotVec2Mul(xfA.Q, sepfunc.M_axis)
			pointA := TransformVec2Mul(xfA, sepfunc.M_localPoint)

			localPointB := sepfunc.M_proxyB.GetVertex(indexB)
			pointB := TransformVec2Mul(xfB, localPointB)

			separation := Vec2Dot(Vec2Sub(pointB, pointA), normal)
			return separation
		}

	case SeparationFunction_Type.E_faceB:
		{
			normal := RotVec2Mul(xfB.Q, sepfunc.M_axis)
			pointB := TransformVec2Mul(xfB, sepfunc.M_localPoint)

			localPointA := sepfunc.M_proxyA.GetVertex(indexA)
			pointA := TransformVec2Mul(xfA, localPointA)

			separation := Vec2Dot(Vec2Sub(pointA, pointB), normal)
			return separation
		}

	default:
		assert(false)
		return 0.0
	}
}

/// Compute the upper bound on time before two shapes penetrate. Time is
/// represented as a fraction between [0,conf.TMax]. This uses a swept
/// separating axis and may miss some intermediate, non-tunneling collision.
/// If you change the time interval, you should call this function again.
/// Note: use Distance to compute the contact point and normal at the time
/// of impact.
// CCD via the local separating axis method. This seeks progression
// by computing the largest time at which separation is maintained.
func TimeOfImpact(input TOIInput, conf ToiConf) TOIOutput {

	output := MakeTOIOutput()
	output.T = conf.TMax

	proxyA := &input.ProxyA
	proxyB := &input.ProxyB

	sweepA := input.SweepA
	sweepB := input.SweepB

	// Large rotations can make the root finder fail, so we normalize the
	// sweep angles.
	sweepA.Normalize()
	sweepB.Normalize()

	tMax := conf.TMax

	totalRadius := proxyA.M_radius + proxyB.M_radius
	target := math.Max(DefaultLinearSlop, totalRadius-conf.TargetDepth)
	tolerance := conf.Tolerance
	assert(target > tolerance)

	t1 := 0.0
	iter := 0

	// Prepare input for distance query.
	cache := MakeSimplexCache()
	cache.Count = 0
	distanceInput := MakeDistanceInput()
	distanceInput.ProxyA = input.ProxyA
	distanceInput.ProxyB = input.ProxyB
	distanceInput.UseRadii = false

	// The outer loop progressively attempts to compute new separating axes.
	// This loop terminates when an axis is repeated (no progress is made).
	for {
		xfA := sweepA.GetTransform(t1)
		xfB := sweepB.GetTransform(t1)

		// Get the distance between shapes. We can also use the results
		// to get a separating axis.
		distanceInput.TransformA = xfA
		distanceInput.TransformB = xfB
		distanceOutput := Distance(&cache, distanceInput)

		output.Stats.SumDistIters += distanceOutput.Iterations
		output.Stats.MaxDistIters = MaxInt(output.Stats.MaxDistIters, distanceOutput.Iterations)

		// If the shapes are overlapped, we give up on continuous collision.
		if distanceOutput.Distance <= 0.0 {
			// Failure!
			output.State = TOIOutput_State.E_overlapped
			output.T = 0.0
			break
		}

		if distanceOutput.Distance < target+tolerance {
			// Victory!
			output.State = TOIOutput_State.E_touching
			output.T = t1
			break
		}

		// Initialize the separating axis.
		var fcn SeparationFunction
		fcn.Initialize(&cache, proxyA, sweepA, proxyB, sweepB, t1)

		// Compute the TOI on the separating axis. We do this by successively
		// resolving the deepest point. This loop is bounded by the number of
		// vertices.
		done := false
		t2 := tMax
		pushBackIter := 0
		for {
			// Find the deepest point at t2. Store the witness point indices.
			var indexA, indexB int
			s2 := fcn.FindMinSeparation(&indexA, &indexB, t2)

			// Is the final configuration separated?
			if s2 > target+tolerance {
				// Victory!
				output.State = TOIOutput_State.E_separated
				output.T = tMax
				done = true
				break
			}

			// Has the separation reached tolerance?
			if s2 > target-tolerance {
				// Advance the sweeps
				t1 = t2
				break
			}

			// Compute the initial separation of the witness points.
			s1 := fcn.Evaluate(indexA, indexB, t1)

			// Check for initial overlap. This might happen if the root finder
			// runs out of iterations.
			if s1 < target-tolerance {
				output.State = TOIOutput_State.E_failed
				output.T = t1
				done = true
				break
			}

			// Check for touching
			if s1 <= target+tolerance {
				// Victory! t1 should hold the TOI (could be 0.0).
				output.State = TOIOutput_State.E_touching
				output.T = t1
				done = true
				break
			}

			// Compute 1D root of: f(x) - target = 0
			rootIterCount := 0
			a1 := t1
			a2 := t2

			for {
				// Use a mix of the secant rule and bisection.
				t := 0.0

				if (rootIterCount & 1) != 0x0000 {
					// Secant rule to improve convergence.
					t = a1 + (target-s1)*(a2-a1)/(s2-s1)
				} else {
					// Bisection to guarantee progress.
					t = 0.5 * (a1 + a2)
				}

				rootIterCount++

				s := fcn.Evaluate(indexA, indexB, t)

				if math.Abs(s-target) < tolerance {
					// t2 holds a tentative value for t1
					t2 = t
					break
				}

				// Ensure we continue to bracket the root.
				if s > target {
					a1 = t
					s1 = s
				} else {
					a2 = t
					s2 = s
				}

				if rootIterCount == conf.MaxRootIters {
					break
				}
			}

			output.Stats.SumRootIters += rootIterCount
			output.Stats.MaxRootIters = MaxInt(output.Stats.MaxRootIters, rootIterCount)

			pushBackIter++

			if pushBackIter == MaxPolygonVertices {
				break
			}
		}

		iter++

		if done {
			break
		}

		if iter == conf.MaxToiIters {
			// Root finder got stuck. Semi-victory.
			output.State = TOIOutput_State.E_failed
			output.T = t1
			break
		}
	}

	output.Stats.ToiIters = iter
	return output
}
