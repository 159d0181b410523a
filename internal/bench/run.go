package bench

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"maps"
	"runtime"
	"slices"
	"time"
	"unicode/utf8"

	"github.com/hephbuild/hsize/internal/hlog"
	"github.com/hephbuild/hsize/internal/hsync"
	"github.com/hephbuild/hsize/lib/hiter"
	"github.com/zeebo/xxh3"
)

var ErrFingerprintMismatch = errors.New("fingerprint mismatch")

type Variant string

const (
	VariantPlain     Variant = "plain"
	VariantEstimated Variant = "estimated"
)

// Measurement is the average over all rounds of collecting one variant.
type Measurement struct {
	Variant     Variant       `json:"variant"`
	Hint        hiter.Hint    `json:"hint"`
	Len         int           `json:"len"`
	Cap         int           `json:"cap,omitempty"`
	Allocs      uint64        `json:"allocs"`
	Bytes       uint64        `json:"bytes"`
	Elapsed     time.Duration `json:"elapsed_ns"`
	Fingerprint string        `json:"fingerprint"`
}

type Result struct {
	Scenario  string      `json:"scenario"`
	Rounds    int         `json:"rounds"`
	Plain     Measurement `json:"plain"`
	Estimated Measurement `json:"estimated"`
}

const (
	CollectSlice  = "slice"
	CollectMap    = "map"
	CollectString = "string"
)

type segment struct {
	start, end int
	stages     []stageFunc
}

type pipeline struct {
	segments []segment
	stages   []stageFunc
	payload  int
	collect  string
}

func compile(s Scenario) (pipeline, error) {
	if len(s.Segments) == 0 {
		return pipeline{}, errors.New("at least one segment is required")
	}

	if s.Payload < 0 {
		return pipeline{}, fmt.Errorf("payload cannot be negative, got %v", s.Payload)
	}

	p := pipeline{payload: s.Payload, collect: s.Collect}
	switch p.collect {
	case "":
		p.collect = CollectSlice
	case CollectSlice:
	case CollectMap, CollectString:
		if p.payload > 0 {
			return pipeline{}, fmt.Errorf("payload is only supported when collecting into a %v", CollectSlice)
		}
	default:
		return pipeline{}, fmt.Errorf("unknown collect kind: %q", p.collect)
	}

	for i, seg := range s.Segments {
		stages, err := compileStages(seg.Stages)
		if err != nil {
			return pipeline{}, fmt.Errorf("segment %v: %w", i, err)
		}

		p.segments = append(p.segments, segment{start: seg.Start, end: seg.End, stages: stages})
	}

	var err error
	p.stages, err = compileStages(s.Stages)
	if err != nil {
		return pipeline{}, err
	}

	return p, nil
}

func (p pipeline) build(estimate bool) hiter.Iterator[int] {
	its := make([]hiter.Iterator[int], 0, len(p.segments))
	for _, seg := range p.segments {
		its = append(its, applyStages(hiter.Range(seg.start, seg.end), seg.stages, estimate))
	}

	var it hiter.Iterator[int]
	if len(its) == 1 {
		it = its[0]
	} else {
		it = hiter.Concat(its...)
	}

	return applyStages(it, p.stages, estimate)
}

func (p pipeline) widen(it hiter.Iterator[int]) hiter.Iterator[[]int] {
	return hiter.Map(it, func(v int) []int {
		s := make([]int, p.payload)
		for i := range s {
			s[i] = v
		}
		return s
	})
}

func pairs(it hiter.Iterator[int]) hiter.Iterator[hiter.Pair[int, int]] {
	return hiter.Map(it, func(v int) hiter.Pair[int, int] {
		return hiter.Pair[int, int]{Key: v, Value: v * 2}
	})
}

func letters(it hiter.Iterator[int]) hiter.Iterator[rune] {
	return hiter.Map(it, func(v int) rune {
		return rune('A' + v%26)
	})
}

var hasherPool = hsync.Pool[*xxh3.Hasher]{New: xxh3.New, Reset: (*xxh3.Hasher).Reset}

func fingerprint(write func(h *xxh3.Hasher, buf []byte)) string {
	h := hasherPool.Get()
	defer hasherPool.Put(h)

	write(h, make([]byte, 0, 8))

	return fmt.Sprintf("%016x", h.Sum64())
}

func writeInt(h *xxh3.Hasher, buf []byte, v int) []byte {
	buf = binary.LittleEndian.AppendUint64(buf[:0], uint64(v))
	_, _ = h.Write(buf)

	return buf
}

func writeSlice(vs []int) func(h *xxh3.Hasher, buf []byte) {
	return func(h *xxh3.Hasher, buf []byte) {
		for _, v := range vs {
			buf = writeInt(h, buf, v)
		}
	}
}

func writeSlices(vss [][]int) func(h *xxh3.Hasher, buf []byte) {
	return func(h *xxh3.Hasher, buf []byte) {
		for _, vs := range vss {
			buf = writeInt(h, buf, len(vs))
			writeSlice(vs)(h, buf)
		}
	}
}

func writeMap(m map[int]int) func(h *xxh3.Hasher, buf []byte) {
	return func(h *xxh3.Hasher, buf []byte) {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			buf = writeInt(h, buf, k)
			buf = writeInt(h, buf, m[k])
		}
	}
}

func writeString(s string) func(h *xxh3.Hasher, buf []byte) {
	return func(h *xxh3.Hasher, buf []byte) {
		_, _ = h.WriteString(s)
	}
}

// collection reads the length, capacity (0 when the collected type has none)
// and fingerprint of a collected value.
type collection[R any] struct {
	len, cap    func(R) int
	fingerprint func(R) string
}

func sliceCollection[T any](write func([]T) func(h *xxh3.Hasher, buf []byte)) collection[[]T] {
	return collection[[]T]{
		len: func(s []T) int { return len(s) },
		cap: func(s []T) int { return cap(s) },
		fingerprint: func(s []T) string {
			return fingerprint(write(s))
		},
	}
}

func measure[T, R any](
	ctx context.Context,
	variant Variant,
	rounds int,
	build func() hiter.Iterator[T],
	collect func(hiter.Iterator[T]) R,
	c collection[R],
) (Measurement, error) {
	m := Measurement{Variant: variant}

	var out R
	var before, after runtime.MemStats
	for i := range rounds {
		if err := ctx.Err(); err != nil {
			return Measurement{}, err
		}

		it := build()
		if i == 0 {
			m.Hint = hiter.HintOf(it)
		}

		runtime.GC()
		runtime.ReadMemStats(&before)
		start := time.Now()

		out = collect(it)

		m.Elapsed += time.Since(start)
		runtime.ReadMemStats(&after)

		m.Allocs += after.Mallocs - before.Mallocs
		m.Bytes += after.TotalAlloc - before.TotalAlloc
	}

	m.Len = c.len(out)
	m.Cap = c.cap(out)
	m.Allocs /= uint64(rounds)
	m.Bytes /= uint64(rounds)
	m.Elapsed /= time.Duration(rounds)
	m.Fingerprint = c.fingerprint(out)

	return m, nil
}

func measurePipeline(ctx context.Context, p pipeline, variant Variant, rounds int) (Measurement, error) {
	estimate := variant == VariantEstimated

	switch p.collect {
	case CollectMap:
		return measure(ctx, variant, rounds, func() hiter.Iterator[hiter.Pair[int, int]] {
			return pairs(p.build(estimate))
		}, hiter.CollectMap[int, int], collection[map[int]int]{
			len: func(m map[int]int) int { return len(m) },
			cap: func(map[int]int) int { return 0 },
			fingerprint: func(m map[int]int) string {
				return fingerprint(writeMap(m))
			},
		})
	case CollectString:
		return measure(ctx, variant, rounds, func() hiter.Iterator[rune] {
			return letters(p.build(estimate))
		}, hiter.CollectString, collection[string]{
			len: func(s string) int { return utf8.RuneCountInString(s) },
			cap: func(string) int { return 0 },
			fingerprint: func(s string) string {
				return fingerprint(writeString(s))
			},
		})
	}

	if p.payload > 0 {
		return measure(ctx, variant, rounds, func() hiter.Iterator[[]int] {
			return p.widen(p.build(estimate))
		}, hiter.Collect[[]int], sliceCollection(writeSlices))
	}

	return measure(ctx, variant, rounds, func() hiter.Iterator[int] {
		return p.build(estimate)
	}, hiter.Collect[int], sliceCollection(writeSlice))
}

func RunScenario(ctx context.Context, s Scenario, rounds int) (Result, error) {
	if rounds <= 0 {
		return Result{}, fmt.Errorf("rounds must be positive, got %v", rounds)
	}

	p, err := compile(s)
	if err != nil {
		return Result{}, fmt.Errorf("%v: %w", s.Name, err)
	}

	res := Result{Scenario: s.Name, Rounds: rounds}

	res.Plain, err = measurePipeline(ctx, p, VariantPlain, rounds)
	if err != nil {
		return Result{}, err
	}

	res.Estimated, err = measurePipeline(ctx, p, VariantEstimated, rounds)
	if err != nil {
		return Result{}, err
	}

	hlog.From(ctx).Debug("measured", "scenario", s.Name, "plain_allocs", res.Plain.Allocs, "estimated_allocs", res.Estimated.Allocs)

	if res.Plain.Fingerprint != res.Estimated.Fingerprint || res.Plain.Len != res.Estimated.Len {
		return res, fmt.Errorf("%v: %w: %v (%v elements) != %v (%v elements)",
			s.Name, ErrFingerprintMismatch,
			res.Plain.Fingerprint, res.Plain.Len,
			res.Estimated.Fingerprint, res.Estimated.Len,
		)
	}

	return res, nil
}

// Run runs, in config order, the scenarios of cfg matching any of patterns,
// or all of them if patterns is empty.
func Run(ctx context.Context, cfg Config, patterns []string) ([]Result, error) {
	scenarios, err := cfg.Select(patterns)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(scenarios))
	for _, s := range scenarios {
		hlog.From(ctx).Info("running", "scenario", s.Name, "rounds", cfg.Rounds)

		res, err := RunScenario(ctx, s, cfg.Rounds)
		if err != nil {
			return results, err
		}

		results = append(results, res)
	}

	return results, nil
}
