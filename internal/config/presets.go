package config

// Presets are the built-in systems. "sol" is the three-level reference
// system the acceptance numbers were derived on.
var Presets = map[string]*SystemSpec{
	"sol": {
		Name: "sol",
		Bodies: []BodySpec{
			{
				Name: "sun",
				Mass: "1.98847e30",
				Static: &StaticSpec{
					Position: [3]string{"64959787070023434667", "23454569021239234304", "29349283489"},
				},
				Rotation: RotationSpec{Axis: [3]float64{0, 1, 0}, Period: "604800"},
				Satellites: []BodySpec{
					{
						Name: "earth",
						Mass: "5.97219e24",
						Orbit: &OrbitSpec{
							RadiusAU: 1.0,
							Period:   "31536000",
							Normal:   [3]float64{0.1, 1.0, 0.0},
						},
						Rotation: RotationSpec{Axis: [3]float64{0, 1, 0}, Period: "86400"},
						Satellites: []BodySpec{
							{
								Name: "moon",
								Mass: "7.3e22",
								Orbit: &OrbitSpec{
									Radius: "384400000",
									Period: "2332800",
									Normal: [3]float64{0.0, 1.0, 0.1},
								},
								Rotation: RotationSpec{Axis: [3]float64{0.3, 1.0, 0.2}, Period: "2332800"},
							},
						},
					},
				},
			},
		},
	},
	"binary": {
		Name: "binary",
		Bodies: []BodySpec{
			{
				Name:     "alpha",
				Mass:     "2.1e30",
				Static:   &StaticSpec{Position: [3]string{"0", "0", "0"}},
				Rotation: RotationSpec{Axis: [3]float64{0, 1, 0}, Period: "1987200"},
				Satellites: []BodySpec{
					{
						Name: "beta",
						Mass: "9.4e29",
						Orbit: &OrbitSpec{
							RadiusAU: 23.4,
							Period:   "2522880000",
							Normal:   [3]float64{0, 1, 0},
						},
						Rotation: RotationSpec{Axis: [3]float64{0, 1, 0}, Period: "3024000"},
					},
				},
			},
		},
	},
}

func GetPreset(name string) *SystemSpec {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}

// DefaultSystem returns the reference sun/earth/moon system.
func DefaultSystem() *SystemSpec {
	return Presets["sol"]
}
