package guideline

// Policy decides which direction of deviation from a guideline is a problem.
type Policy string

const (
	// PolicyBoth flags any deviation.
	PolicyBoth Policy = "both"
	// PolicyOver flags only values above the guideline.
	PolicyOver Policy = "over"
	// PolicyUnder flags only values below the guideline.
	PolicyUnder Policy = "under"
)

// Epsilon absorbs text and float rounding when comparing exact targets.
const Epsilon = 0.01

// Field describes a checked field.
type Field struct {
	Name    string
	Display string
	Policy  Policy
}

// Fields is the fixed check order. Policy belongs to the field: a lower
// brake force is always acceptable, and higher damage multipliers only make
// a vehicle more durable.
var Fields = []Field{
	{Name: "fInitialDragCoeff", Display: "Drag Coefficient", Policy: PolicyBoth},
	{Name: "fDownforceModifier", Display: "Downforce Modifier", Policy: PolicyBoth},
	{Name: "nInitialDriveGears", Display: "Drive Gears", Policy: PolicyBoth},
	{Name: "fInitialDriveForce", Display: "Drive Force", Policy: PolicyBoth},
	{Name: "fDriveInertia", Display: "Drive Inertia", Policy: PolicyBoth},
	{Name: "fClutchChangeRateScaleUpShift", Display: "Clutch Up Shift", Policy: PolicyBoth},
	{Name: "fClutchChangeRateScaleDownShift", Display: "Clutch Down Shift", Policy: PolicyBoth},
	{Name: "fInitialDriveMaxFlatVel", Display: "Max Flat Velocity", Policy: PolicyBoth},
	{Name: "fBrakeForce", Display: "Brake Force", Policy: PolicyOver},
	{Name: "fHandBrakeForce", Display: "Handbrake Force", Policy: PolicyBoth},
	{Name: "fSteeringLock", Display: "Steering Lock", Policy: PolicyBoth},
	{Name: "fTractionCurveMax", Display: "Traction Curve Max", Policy: PolicyBoth},
	{Name: "fTractionCurveMin", Display: "Traction Curve Min", Policy: PolicyBoth},
	{Name: "fTractionCurveLateral", Display: "Traction Curve Lateral", Policy: PolicyBoth},
	{Name: "fCamberStiffnesss", Display: "Camber Stiffness", Policy: PolicyBoth},
	{Name: "fSuspensionReboundDamp", Display: "Suspension Rebound Damp", Policy: PolicyBoth},
	{Name: "fCollisionDamageMult", Display: "Collision Damage Mult", Policy: PolicyUnder},
	{Name: "fWeaponDamageMult", Display: "Weapon Damage Mult", Policy: PolicyUnder},
	{Name: "fDeformationDamageMult", Display: "Deformation Damage Mult", Policy: PolicyUnder},
	{Name: "fEngineDamageMult", Display: "Engine Damage Mult", Policy: PolicyUnder},
	{Name: "fPetrolTankVolume", Display: "Petrol Tank Volume", Policy: PolicyBoth},
}

// Bound pairs whose lower field must not exceed the upper one.
type Bound struct {
	Lower string
	Upper string
}

// Bounds lists the paired limit fields.
var Bounds = []Bound{
	{Lower: "fSuspensionLowerLimit", Upper: "fSuspensionUpperLimit"},
}

var fieldIndex = func() map[string]Field {
	m := make(map[string]Field, len(Fields))
	for _, f := range Fields {
		m[f.Name] = f
	}
	return m
}()

// PolicyFor returns a field's comparison policy; unknown fields use PolicyBoth.
func PolicyFor(name string) Policy {
	if f, ok := fieldIndex[name]; ok {
		return f.Policy
	}
	return PolicyBoth
}

// DisplayName returns a field's human name, falling back to the field name.
func DisplayName(name string) string {
	if f, ok := fieldIndex[name]; ok {
		return f.Display
	}
	return name
}
