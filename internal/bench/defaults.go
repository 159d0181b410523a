package bench

func modulo(divisor int) Stage {
	return Stage{Kind: StageModulo, Options: map[string]any{"divisor": divisor}}
}

func exact(n int) Stage {
	return Stage{Kind: StageEstimate, Options: map[string]any{"mode": EstimateModeExact, "n": n}}
}

func DefaultConfig() Config {
	return Config{
		Rounds: 10,
		Scenarios: []Scenario{
			{
				Name:     "sparse",
				Segments: []Segment{{Start: 0, End: 100_000, Stages: []Stage{modulo(997), exact(101)}}},
			},
			{
				Name:     "large",
				Segments: []Segment{{Start: 0, End: 50_000, Stages: []Stage{modulo(10), exact(5_000)}}},
				Payload:  100,
			},
			{
				Name: "thirds",
				Segments: []Segment{{Start: 0, End: 100_000, Stages: []Stage{
					modulo(3),
					{Kind: StageEstimate, Options: map[string]any{"mode": EstimateModeHint, "lower": 33_333, "upper": 50_000}},
				}}},
			},
			{
				Name: "chain",
				Segments: []Segment{
					{Start: 0, End: 33_333, Stages: []Stage{modulo(2), exact(16_667)}},
					{Start: 33_333, End: 66_666, Stages: []Stage{modulo(3), exact(11_111)}},
					{Start: 66_666, End: 100_000, Stages: []Stage{modulo(5), exact(6_666)}},
				},
			},
			{
				Name: "pipeline",
				Segments: []Segment{{Start: 0, End: 100_000, Stages: []Stage{
					modulo(2),
					exact(50_000),
					{Kind: StageSquare},
					{Kind: StageModulo, Options: map[string]any{"divisor": 100, "below": 50}},
					exact(25_000),
				}}},
			},
			{
				Name:     "map",
				Segments: []Segment{{Start: 0, End: 100_000, Stages: []Stage{modulo(2), exact(50_000)}}},
				Collect:  CollectMap,
			},
			{
				Name: "string",
				Segments: []Segment{{Start: 0, End: 100_000, Stages: []Stage{
					{Kind: StageModulo, Options: map[string]any{"divisor": 26, "equals": 4, "negate": true}},
					exact(96_154),
				}}},
				Collect: CollectString,
			},
			{
				Name: "lower-bound",
				Segments: []Segment{{Start: 0, End: 10_000, Stages: []Stage{
					{Kind: StageModulo, Options: map[string]any{"divisor": 3, "negate": true}},
					{Kind: StageEstimate, Options: map[string]any{"mode": EstimateModeMin, "n": 6_000}},
				}}},
			},
		},
	}
}
