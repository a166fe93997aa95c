package rope

// Falloff tapers the wave amplitude across the normalized rope position:
// u=0 at the origin end, u=1 at the grapple end. Curves are expected to map
// [0,1] into roughly [0,1] and be monotonic by convention, but nothing is
// enforced.
type Falloff func(u float64) float64

var (
	// FalloffLinear grows the wave toward the grapple end.
	FalloffLinear Falloff = func(u float64) float64 { return u }

	// FalloffFlat applies the full amplitude everywhere.
	FalloffFlat Falloff = func(u float64) float64 { return 1 }

	// FalloffSmooth is a smoothstep ramp toward the grapple end.
	FalloffSmooth Falloff = func(u float64) float64 { return u * u * (3 - 2*u) }

	// FalloffTaper grows the wave toward the origin end instead.
	FalloffTaper Falloff = func(u float64) float64 { return 1 - u }
)

var falloffs = map[string]Falloff{
	"linear": FalloffLinear,
	"flat":   FalloffFlat,
	"smooth": FalloffSmooth,
	"taper":  FalloffTaper,
}

// FalloffNamed resolves a curve by its config name.
func FalloffNamed(name string) (Falloff, bool) {
	f, ok := falloffs[name]
	return f, ok
}

// FalloffNames lists the registered curve names.
func FalloffNames() []string {
	names := make([]string, 0, len(falloffs))
	for name := range falloffs {
		names = append(names, name)
	}
	return names
}
