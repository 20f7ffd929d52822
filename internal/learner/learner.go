// Package learner implements IREP* rule induction and k-pass ruleset
// optimization, and orchestrates both across a dataset's classes in
// prevalence order to produce a Model.
package learner

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ripperk-go/ripperk/internal/dataset"
	"github.com/ripperk-go/ripperk/internal/mathutil"
	"github.com/ripperk-go/ripperk/internal/model"
	"github.com/ripperk-go/ripperk/internal/rule"
	"github.com/ripperk-go/ripperk/internal/ruleset"
	"github.com/ripperk-go/ripperk/internal/telemetry"
)

// bitLenThreshold is the MDL stopping margin from the original RIPPER
// paper: IREP* stops adding rules once the ruleset's description length
// exceeds the best-seen value by more than this many bits.
const bitLenThreshold = 64

// Config controls the pruning split and optimization depth.
type Config struct {
	// Ratio is the grow/prune split fraction (ρ). Default 2/3.
	Ratio float64
	// K is the number of optimization passes run after IREP*. Default 2.
	K int
}

// EventPhase names a point in the learning process a ProgressEvent can
// report on.
type EventPhase string

const (
	PhaseClassStarted     EventPhase = "class_started"
	PhaseRuleAdded        EventPhase = "rule_added"
	PhaseOptimizationPass EventPhase = "optimization_pass"
	PhaseClassDone        EventPhase = "class_done"
)

// ProgressEvent reports one step of a Fit run, suitable for driving a
// live progress view or a websocket stream.
type ProgressEvent struct {
	Phase EventPhase
	Class string
	Rules int
	DL    float64
}

// Learner runs IREP* and k-pass optimization against a Catalog.
type Learner struct {
	catalog *dataset.Catalog
	cfg     Config
	logger  *slog.Logger
	events  chan<- ProgressEvent
}

// New returns a Learner bound to catalog. logger and events may be nil;
// a nil logger discards all log output, a nil events channel means no
// progress is reported.
func New(catalog *dataset.Catalog, cfg Config, logger *slog.Logger, events chan<- ProgressEvent) *Learner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(discardWriter{}, nil))
	}
	return &Learner{catalog: catalog, cfg: cfg, logger: logger, events: events}
}

func (l *Learner) emit(ev ProgressEvent) {
	if l.events == nil {
		return
	}
	l.events <- ev
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// removeCovered returns the subset of instances not covered by r.
func removeCovered(instances []dataset.Instance, r *rule.Rule) []dataset.Instance {
	if len(instances) == 0 {
		return instances
	}
	out := make([]dataset.Instance, 0, len(instances))
	for _, inst := range instances {
		if !r.CoverInstance(inst) {
			out = append(out, inst)
		}
	}
	return out
}

// splitGrowPrune ρ-splits instances into a grow set (the first
// floor(len·ρ)+1 elements) and a prune set (the rest), per spec.md §5.
func splitGrowPrune(instances []dataset.Instance, ratio float64) (grow, prune []dataset.Instance) {
	n := len(instances)
	growEnd := int(math.Floor(float64(n)*ratio)) + 1
	if growEnd > n {
		growEnd = n
	}
	return instances[:growEnd], instances[growEnd:]
}

// baselineDL computes the reference-class baseline description length
// used to seed IREP*'s min_dl: log2C(|dataset|, m), clamped at 0, where
// m counts instances whose class differs from defaultClass (the
// prevalence-based reference — see DESIGN.md's Open Question decision).
func baselineDL(full []dataset.Instance, defaultClass string) float64 {
	m := 0
	for _, inst := range full {
		if inst.Class != defaultClass {
			m++
		}
	}
	return math.Max(mathutil.Log2Combination(len(full), m), 0)
}

// irep runs Incremental Reduced Error Pruning for one class: grow, prune,
// add, stop on an empty rule or when accumulated ruleset DL exceeds
// min_dl+bitLenThreshold relative to a baseline measured once at entry.
func (l *Learner) irep(ctx context.Context, class string, pos, neg, full []dataset.Instance, defaultClass string) *ruleset.Ruleset {
	rs := ruleset.New()
	minDL := baselineDL(full, defaultClass)

	// Fixed snapshot used to measure ruleset DL throughout this call —
	// distinct from the working pos/neg, which shrink as rules cover
	// instances.
	snapshotPos := append([]dataset.Instance(nil), pos...)
	snapshotNeg := append([]dataset.Instance(nil), neg...)

	workingPos := pos
	workingNeg := neg

	for len(workingPos) > 0 {
		growPos, prunePos := splitGrowPrune(workingPos, l.cfg.Ratio)
		growNeg, pruneNeg := splitGrowPrune(workingNeg, l.cfg.Ratio)

		r := rule.New(l.catalog)
		r.Grow(growPos, growNeg)
		r.Prune(prunePos, pruneNeg)

		if r.Empty() {
			break
		}

		rs.AddRule(r)
		telemetry.RulesTotal.WithLabelValues(class, "grown").Inc()
		telemetry.RecordRuleInduced(ctx, class)
		workingPos = removeCovered(workingPos, r)
		workingNeg = removeCovered(workingNeg, r)

		dl := rs.DL(snapshotPos, snapshotNeg)
		l.emit(ProgressEvent{Phase: PhaseRuleAdded, Class: class, Rules: rs.Size(), DL: dl})
		l.logger.Debug("rule added", slog.String("class", class), slog.Int("rules", rs.Size()), slog.Float64("dl", dl))

		if dl > minDL+bitLenThreshold {
			break
		}
		minDL = math.Min(minDL, dl)
	}

	return rs
}

// optimize runs one pass over every rule handle in rs, keeping whichever
// of {original, replacement, revision} minimizes the ruleset's DL
// against (pos, neg).
func (l *Learner) optimize(rs *ruleset.Ruleset, class string, pos, neg []dataset.Instance) {
	growPos, prunePos := splitGrowPrune(pos, l.cfg.Ratio)
	growNeg, pruneNeg := splitGrowPrune(neg, l.cfg.Ratio)

	for _, h := range rs.Handles() {
		original := rs.GetRule(h).Clone()

		minDL := rs.DL(pos, neg)
		best := original

		replacement := rule.New(l.catalog)
		replacement.Grow(growPos, growNeg)
		rs.ReplaceRule(h, replacement)
		beforeLen := len(rs.GetRule(h).Conditions())
		rs.PruneRuleInContext(h, prunePos, pruneNeg)
		if len(rs.GetRule(h).Conditions()) < beforeLen {
			telemetry.RulesTotal.WithLabelValues(class, "pruned").Inc()
		}
		if dl := rs.DL(pos, neg); dl < minDL {
			minDL = dl
			best = rs.GetRule(h).Clone()
		}

		revision := original.Clone()
		revision.Grow(growPos, growNeg)
		rs.ReplaceRule(h, revision)
		beforeLen = len(rs.GetRule(h).Conditions())
		// Unlike replacement, revision is pruned against the plain
		// per-rule reduced-error metric, not the ruleset-wide DL search.
		rs.GetRule(h).Prune(prunePos, pruneNeg)
		if len(rs.GetRule(h).Conditions()) < beforeLen {
			telemetry.RulesTotal.WithLabelValues(class, "pruned").Inc()
		}
		if dl := rs.DL(pos, neg); dl < minDL {
			best = rs.GetRule(h).Clone()
		}

		rs.ReplaceRule(h, best)
	}
}

// classPrevalence pairs a class name with its instance count.
type classPrevalence struct {
	name  string
	count int
}

// learningOrder returns classes sorted ascending by prevalence (least
// prevalent first), ties broken alphabetically for determinism. The
// last entry is the most prevalent and becomes the default class.
func learningOrder(instances []dataset.Instance) []classPrevalence {
	counts := make(map[string]int)
	for _, inst := range instances {
		counts[inst.Class]++
	}
	out := make([]classPrevalence, 0, len(counts))
	for name, count := range counts {
		out = append(out, classPrevalence{name: name, count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count < out[j].count
		}
		return out[i].name < out[j].name
	})
	return out
}

// Fit trains a Model from instances: classes are learned in ascending
// prevalence order, each against the instances of every class not yet
// learned (the default class included); the most prevalent class becomes
// the default and never gets an induced ruleset.
func (l *Learner) Fit(ctx context.Context, instances []dataset.Instance) *model.Model {
	order := learningOrder(instances)
	m := model.New(l.catalog)

	if len(order) == 0 {
		return m
	}
	defaultClass := order[len(order)-1].name
	m.SetDefaultClass(defaultClass)

	remaining := make(map[string]bool, len(order))
	for _, cp := range order {
		remaining[cp.name] = true
	}

	for i, cp := range order {
		if i == len(order)-1 {
			// Most prevalent class: the default, never learned.
			break
		}
		class := cp.name
		ctx, span := telemetry.Tracer().Start(ctx, "learner.fit_class", trace.WithAttributes(attribute.String("class", class)))

		l.emit(ProgressEvent{Phase: PhaseClassStarted, Class: class})
		l.logger.Info("class started", slog.String("class", class))

		var pos, neg []dataset.Instance
		for _, inst := range instances {
			if inst.Class == class {
				pos = append(pos, inst)
			} else if remaining[inst.Class] {
				neg = append(neg, inst)
			}
		}

		rs := l.irep(ctx, class, pos, neg, instances, defaultClass)
		for pass := 0; pass < l.cfg.K; pass++ {
			l.optimize(rs, class, pos, neg)
			dl := rs.DL(pos, neg)
			telemetry.OptimizationPasses.WithLabelValues(class).Inc()
			l.emit(ProgressEvent{Phase: PhaseOptimizationPass, Class: class, Rules: rs.Size(), DL: dl})
			l.logger.Info("optimization pass complete", slog.String("class", class), slog.Int("pass", pass+1), slog.Float64("dl", dl))
		}

		telemetry.ClassDescriptionLength.WithLabelValues(class).Observe(rs.DL(pos, neg))
		telemetry.RecordClassFitted(ctx, class)
		span.End()

		m.Add(class, rs)
		delete(remaining, class)
		l.emit(ProgressEvent{Phase: PhaseClassDone, Class: class, Rules: rs.Size()})
	}

	return m
}
