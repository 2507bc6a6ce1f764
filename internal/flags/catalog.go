// Package flags decodes and encodes packed handling and weapon flag masks.
package flags

import (
	"fmt"

	"github.com/Veraticus/handling-analyzer/internal/common"
)

// Definition describes a single named bit in a flag catalog.
type Definition struct {
	Name        string
	Description string
	Value       uint64
	Recommended bool
}

// Catalog is an ordered table of flag definitions.
type Catalog struct {
	Name        string
	Definitions []Definition
}

// Lookup returns the definition with the given bit value.
func (c *Catalog) Lookup(value uint64) (Definition, bool) {
	for _, def := range c.Definitions {
		if def.Value == value {
			return def, true
		}
	}
	return Definition{}, false
}

// ByName returns the definition with the given flag name.
func (c *Catalog) ByName(name string) (Definition, error) {
	for _, def := range c.Definitions {
		if def.Name == name {
			return def, nil
		}
	}
	return Definition{}, fmt.Errorf("%s flag %q: %w", c.Name, name, common.ErrUnknownFlag)
}

// HandlingFlags is the strHandlingFlags catalog. The top entry sits at 2^31
// and does not fit a signed 32-bit integer.
var HandlingFlags = &Catalog{
	Name: "handling",
	Definitions: []Definition{
		{Value: 1, Name: "smoothed_compression", Description: "Simulates progressive spring suspension, making suspension compression motion smoother", Recommended: true},
		{Value: 2, Name: "reduced_mod_mass", Description: "Reduces mass added from upgrades", Recommended: true},
		{Value: 4, Name: "has_kers", Description: "Partially enables KERS on the vehicle; disables the horn and shows the recharge bar below the minimap"},
		{Value: 8, Name: "has_rally_tyres", Description: "Inverts the way grip works. Grip starts at min value and increases to max upon wheel slip"},
		{Value: 16, Name: "no_handbrake", Description: "Disables handbrake control for the vehicle"},
		{Value: 32, Name: "steer_rearwheels", Description: "Steers the rear wheels instead of the front"},
		{Value: 64, Name: "handbrake_rearwheelsteer", Description: "Handbrake control makes the rear wheels steer in addition to the front", Recommended: true},
		{Value: 128, Name: "steer_all_wheels", Description: "Steers all wheels, with rear wheels steering at the same lock angle as the front", Recommended: true},
		{Value: 256, Name: "freewheel_no_gas", Description: "Disables engine-braking when no throttle is applied", Recommended: true},
		{Value: 512, Name: "no_reverse", Description: "Disables reversing for the vehicle"},
		{Value: 1024, Name: "reduced_righting_force", Description: "Makes the vehicle slower to flip back on its wheels"},
		{Value: 2048, Name: "steer_no_wheels", Description: "Disables steering on all wheels, for use with vehicles with tracks"},
		{Value: 4096, Name: "cvt", Description: "Gives the vehicle a variable-ratio transmission, for use with vehicles with 1 gear", Recommended: true},
		{Value: 8192, Name: "alt_ext_wheel_bounds_beh", Description: "Currently undefined", Recommended: true},
		{Value: 16384, Name: "dont_raise_bounds_at_speed", Description: "Currently undefined", Recommended: true},
		{Value: 32768, Name: "ext_wheel_bounds_col", Description: "Currently undefined", Recommended: true},
		{Value: 65536, Name: "less_snow_sink", Description: "Less grip loss from deep mud or snow, most notably in North Yankton", Recommended: true},
		{Value: 131072, Name: "tyres_can_clip", Description: "Allows tyres to clip into the ground when under enough pressure", Recommended: true},
		{Value: 262144, Name: "reduced_drive_over_damage", Description: "Currently undefined", Recommended: true},
		{Value: 524288, Name: "alt_ext_wheel_bounds_shrink", Description: "Currently undefined", Recommended: true},
		{Value: 1048576, Name: "offroad_abilities", Description: "Gravity increased by 10% to 10.78 m/s², increased grip and power", Recommended: true},
		{Value: 2097152, Name: "offroad_abilities_x2", Description: "Gravity increased by 20% to 11.76 m/s², bush immunity, increased power, auto-levelling", Recommended: true},
		{Value: 4194304, Name: "tyres_raise_side_impact_threshold", Description: "Includes the tyres in the general collision hitbox of the vehicle", Recommended: true},
		{Value: 8388608, Name: "offroad_increased_gravity_no_foliage_drag", Description: "Gravity increased by 20%, bush immunity, increased power, no auto-levelling", Recommended: true},
		{Value: 16777216, Name: "enable_lean", Description: "Currently undefined", Recommended: true},
		{Value: 33554432, Name: "force_no_tc_or_sc", Description: "Allows motorcycles to lose traction", Recommended: true},
		{Value: 67108864, Name: "heavyarmour", Description: "Currently undefined"},
		{Value: 134217728, Name: "armoured", Description: "Prevents vehicle doors (including hood and trunk) from opening in collisions"},
		{Value: 268435456, Name: "self_righting_in_water", Description: "Currently undefined", Recommended: true},
		{Value: 536870912, Name: "improved_righting_force", Description: "Increases force acting on the vehicle when attempting to flip it back on its wheels", Recommended: true},
		{Value: 1073741824, Name: "low_speed_wheelies", Description: "Allows a motorcycle to perform wheelies at very low speeds", Recommended: true},
		{Value: 2147483648, Name: "last_available_flag", Description: "Currently undefined", Recommended: true},
	},
}

// WeaponFlags is the weapon flag catalog.
var WeaponFlags = &Catalog{
	Name: "weapon",
	Definitions: []Definition{
		{Value: 1, Name: "Infinite Ammo", Description: "Unlimited ammunition"},
		{Value: 2, Name: "No Reload", Description: "No reload required"},
		{Value: 4, Name: "No Recoil", Description: "No recoil"},
		{Value: 8, Name: "Explosive", Description: "Explosive projectiles"},
		{Value: 16, Name: "Armor Piercing", Description: "Penetrates armor", Recommended: true},
		{Value: 32, Name: "Can Lock On", Description: "Can lock on to targets", Recommended: true},
		{Value: 64, Name: "Silenced", Description: "Suppressed", Recommended: true},
		{Value: 128, Name: "Full Auto", Description: "Fully automatic fire", Recommended: true},
		{Value: 256, Name: "High Damage", Description: "Increased damage"},
		{Value: 512, Name: "Fast Fire Rate", Description: "Fast rate of fire"},
	},
}

// CatalogByName resolves "handling" or "weapon".
func CatalogByName(name string) (*Catalog, error) {
	switch name {
	case HandlingFlags.Name:
		return HandlingFlags, nil
	case WeaponFlags.Name:
		return WeaponFlags, nil
	default:
		return nil, fmt.Errorf("unknown flag catalog %q: %w", name, common.ErrInvalidConfig)
	}
}
