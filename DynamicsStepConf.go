package playrho

/// Step configuration.
/// A frozen, step-scoped bundle of every numeric knob, iteration budget and
/// toggle that World.Step consumes. Value semantics: Step never mutates the
/// conf it is given (it works on its own copy), so a caller can reuse one
/// conf across steps.
type StepConf struct {
	/// Delta time. This is the time step in seconds.
	DeltaTime float64

	/// Delta time ratio. This is the delta-time multiplied by the inverse
	/// delta time from the previous world step. The value of 1 indicates
	/// that the time step has not varied.
	DtRatio float64

	/// Minimum still time to sleep.
	MinStillTimeToSleep float64

	/// Linear slop. Used in both regular and TOI phases.
	LinearSlop float64

	/// Angular slop.
	AngularSlop float64

	/// Regular resolution rate. Scales the erroneous overlap resolved per
	/// regular-phase position iteration.
	RegResolutionRate float64

	/// Regular minimum separation. Below this, the regular position solver
	/// keeps iterating.
	RegMinSeparation float64

	/// TOI resolution rate.
	ToiResolutionRate float64

	/// TOI minimum separation.
	ToiMinSeparation float64

	/// Targeted depth of impact for time of impact calculations.
	TargetDepth float64

	/// Tolerance around the target depth for time of impact calculations.
	Tolerance float64

	/// Velocity threshold. Collisions slower than this are treated as
	/// inelastic.
	VelocityThreshold float64

	/// Maximum translation of a body per step.
	MaxTranslation float64

	/// Maximum rotation of a body per step.
	MaxRotation float64

	/// Maximum linear correction per position iteration.
	MaxLinearCorrection float64

	/// Maximum angular correction per position iteration.
	MaxAngularCorrection float64

	/// Linear sleep tolerance.
	LinearSleepTolerance float64

	/// Angular sleep tolerance.
	AngularSleepTolerance float64

	/// Displacement multiplier for the broad-phase move prediction.
	DisplaceMultiplier float64

	/// AABB extension for broad-phase fattening.
	AabbExtension float64

	/// Regular phase velocity iterations.
	RegVelocityIterations int

	/// Regular phase position iterations. A zero budget disables the
	/// regular-phase position correction entirely.
	RegPositionIterations int

	/// TOI phase velocity iterations.
	ToiVelocityIterations int

	/// TOI phase position iterations.
	ToiPositionIterations int

	/// Maximum number of TOI sub-steps any contact gets within one step.
	MaxSubSteps int

	/// Maximum number of root finder iterations per TOI push back.
	MaxToiRootIters int

	/// Maximum number of outer TOI loop iterations.
	MaxToiIters int

	/// Maximum number of GJK distance iterations.
	MaxDistanceIters int

	/// Whether to apply the accumulated impulses from the previous step
	/// before solving.
	DoWarmStart bool

	/// Whether to run the continuous collision (TOI) phase at all.
	DoToi bool
}

/// Makes a step configuration with the all-defaults values. The delta time
/// starts at zero; use SetTime before stepping.
func MakeStepConf() StepConf {
	return StepConf{
		DeltaTime:             0.0,
		DtRatio:               1.0,
		MinStillTimeToSleep:   DefaultMinStillTimeToSleep,
		LinearSlop:            DefaultLinearSlop,
		AngularSlop:           DefaultAngularSlop,
		RegResolutionRate:     DefaultRegResolutionRate,
		RegMinSeparation:      -DefaultLinearSlop * 3,
		ToiResolutionRate:     DefaultToiResolutionRate,
		ToiMinSeparation:      -DefaultLinearSlop * 1.5,
		TargetDepth:           DefaultLinearSlop * 3,
		Tolerance:             DefaultLinearSlop / 4,
		VelocityThreshold:     DefaultVelocityThreshold,
		MaxTranslation:        DefaultMaxTranslation,
		MaxRotation:           DefaultMaxRotation,
		MaxLinearCorrection:   DefaultMaxLinearCorrection,
		MaxAngularCorrection:  DefaultMaxAngularCorrection,
		LinearSleepTolerance:  DefaultLinearSleepTolerance,
		AngularSleepTolerance: DefaultAngularSleepTolerance,
		DisplaceMultiplier:    AabbMultiplier,
		AabbExtension:         AabbExtension,
		RegVelocityIterations: 8,
		RegPositionIterations: 3,
		ToiVelocityIterations: 8,
		ToiPositionIterations: 20,
		MaxSubSteps:           DefaultMaxSubSteps,
		MaxToiRootIters:       DefaultMaxToiRootIters,
		MaxToiIters:           DefaultMaxToiIters,
		MaxDistanceIters:      DefaultMaxDistanceIters,
		DoWarmStart:           true,
		DoToi:                 true,
	}
}

/// Sets the delta time, returning the updated conf.
func (conf StepConf) SetTime(value float64) StepConf {
	conf.DeltaTime = value
	return conf
}

func (conf StepConf) SetInvTime(value float64) StepConf {
	if value != 0.0 {
		conf.DeltaTime = 1.0 / value
	} else {
		conf.DeltaTime = 0.0
	}
	return conf
}

func (conf StepConf) UseDtRatio(value float64) StepConf {
	conf.DtRatio = value
	return conf
}

/// Gets the inverse delta time, or zero if the delta time is zero.
func (conf StepConf) GetInvTime() float64 {
	if conf.DeltaTime != 0.0 {
		return 1.0 / conf.DeltaTime
	}
	return 0.0
}

/// Gets the time of impact configuration this step conf implies.
func GetToiConf(conf StepConf) ToiConf {
	return MakeToiConf().
		UseTimeMax(1.0).
		UseTargetDepth(conf.TargetDepth).
		UseTolerance(conf.Tolerance).
		UseMaxRootIters(conf.MaxToiRootIters).
		UseMaxToiIters(conf.MaxToiIters)
}

/// Pre-phase step statistics: what the collide stage did to the contact
/// list before any solving.
type PreStepStats struct {
	ProxiesMoved      int
	ContactsDestroyed int
	ContactsAdded     int
	ContactsUpdated   int
	ContactsSkipped   int
}

/// Regular phase statistics.
type RegStepStats struct {
	/// Minimum separation seen by the position solver. Negative values are
	/// overlap in meters.
	MinSeparation float64

	/// Maximum incremental impulse applied by the velocity solver.
	MaxIncImpulse float64

	IslandsFound  int
	IslandsSolved int
	ContactsAdded int
	BodiesSlept   int
	ProxiesMoved  int
	SumPosIters   int
	SumVelIters   int
}

/// TOI phase statistics.
type ToiStepStats struct {
	MinSeparation float64
	MaxIncImpulse float64

	IslandsFound  int
	IslandsSolved int

	/// Number of contacts found by TOI sub-stepping.
	ContactsFound int

	/// Number of contacts that ran out of their sub-step budget.
	/// Non-convergence is not an error: the step proceeds with its best
	/// estimate and reports it here.
	ContactsAtMaxSubSteps int

	ContactsUpdatedToi int
	ContactsAdded      int
	ProxiesMoved       int
	SumPosIters        int
	SumVelIters        int
	MaxDistIters       int
	MaxToiIters        int
	MaxRootIters       int
}

/// Per-step statistics. These counters are the primary observability
/// surface of a step and are exact counts, not samples.
type StepStats struct {
	Pre PreStepStats
	Reg RegStepStats
	Toi ToiStepStats
}

func MakeStepStats() StepStats {
	stats := StepStats{}
	stats.Reg.MinSeparation = MaxFloat
	stats.Toi.MinSeparation = MaxFloat
	return stats
}
