package documents

// Fixture represents a predefined set of field values for testing.
type Fixture interface {
	// Name returns the fixture's descriptive name.
	Name() string

	// Fields returns name and text pairs in application order.
	Fields() [][2]string

	// Flags returns strHandlingFlags bits, or nil to leave flags alone.
	Flags() []uint64
}

type fixture struct {
	name   string
	fields [][2]string
	flags  []uint64
}

func (f *fixture) Name() string        { return f.name }
func (f *fixture) Fields() [][2]string { return f.fields }
func (f *fixture) Flags() []uint64     { return f.flags }

// Predefined fixtures for common test scenarios.
var (
	// FixtureOverTuned pushes power and brakes up and durability down, in the
	// standard drive-force bucket.
	FixtureOverTuned = &fixture{
		name: "OverTuned",
		fields: [][2]string{
			{"fInitialDriveForce", "0.26"},
			{"fBrakeForce", "9.0"},
			{"fCollisionDamageMult", "0.1"},
			{"fEngineDamageMult", "0.1"},
		},
	}

	// FixtureInvertedSuspension has its lower suspension limit above the upper.
	FixtureInvertedSuspension = &fixture{
		name: "InvertedSuspension",
		fields: [][2]string{
			{"fSuspensionUpperLimit", "-0.1"},
			{"fSuspensionLowerLimit", "0.2"},
		},
	}

	// FixtureRallyFlags enables two unrecommended handling flags.
	FixtureRallyFlags = &fixture{
		name:  "RallyFlags",
		flags: []uint64{4, 8},
	}
)
