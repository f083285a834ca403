// Package store ingests test run messages one at a time into in-memory
// tables. It is the write side of the query facade.
package store

import (
	"sync"

	"github.com/Masterminds/semver/v3"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"

	"github.com/teranos/runquery/lineage"
	"github.com/teranos/runquery/logger"
	"github.com/teranos/runquery/messages"
)

// Repository holds every table. Each Update is applied under one write
// lock, so readers never observe half of a message.
//
// Tables are append-or-replace: 1:1 slots (meta, run started/finished)
// are last write wins, 1:many relations keep arrival order.
type Repository struct {
	mu sync.RWMutex

	features featureSet
	protocol *semver.Constraints
	log      *zap.SugaredLogger

	meta            *messages.Meta
	testRunStarted  *messages.TestRunStarted
	testRunFinished *messages.TestRunFinished

	documents          *orderedmap.OrderedMap[string, *messages.GherkinDocument]
	lineages           *lineage.Index
	stepByID           map[string]*messages.Step
	pickleByID         *orderedmap.OrderedMap[string, *messages.Pickle]
	pickleStepByID     *orderedmap.OrderedMap[string, *messages.PickleStep]
	testCaseByID       *orderedmap.OrderedMap[string, *messages.TestCase]
	testStepByID       *orderedmap.OrderedMap[string, *messages.TestStep]
	hookByID           map[string]*messages.Hook
	stepDefinitionByID *orderedmap.OrderedMap[string, *messages.StepDefinition]

	testCaseStartedByID                  *orderedmap.OrderedMap[string, *messages.TestCaseStarted]
	testCaseFinishedByTestCaseStartedID  *orderedmap.OrderedMap[string, *messages.TestCaseFinished]
	testStepsStartedByTestCaseStartedID  map[string][]*messages.TestStepStarted
	testStepsFinishedByTestCaseStartedID map[string][]*messages.TestStepFinished
	testRunHookStartedByID               *orderedmap.OrderedMap[string, *messages.TestRunHookStarted]
	testRunHookFinishedByStartedID       *orderedmap.OrderedMap[string, *messages.TestRunHookFinished]
	attachmentsByTestCaseStartedID       map[string][]*messages.Attachment
	attachmentsByTestRunHookStartedID    map[string][]*messages.Attachment
	suggestionsByPickleStepID            map[string][]*messages.Suggestion
	undefinedParameterTypes              []*messages.UndefinedParameterType

	updates int
}

type Option func(*Repository)

// WithFeatures enables optional categories. Without it none are retained.
func WithFeatures(features ...Feature) Option {
	return func(r *Repository) {
		for _, f := range features {
			r.features[f] = true
		}
	}
}

// WithLogger replaces the component logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(r *Repository) { r.log = log }
}

// WithProtocolConstraint warns when Meta announces a protocol version
// outside c.
func WithProtocolConstraint(c *semver.Constraints) Option {
	return func(r *Repository) { r.protocol = c }
}

func New(opts ...Option) *Repository {
	r := &Repository{
		features: featureSet{},
		log:      logger.ComponentLogger("store"),

		documents:          orderedmap.New[string, *messages.GherkinDocument](),
		lineages:           lineage.NewIndex(),
		stepByID:           make(map[string]*messages.Step),
		pickleByID:         orderedmap.New[string, *messages.Pickle](),
		pickleStepByID:     orderedmap.New[string, *messages.PickleStep](),
		testCaseByID:       orderedmap.New[string, *messages.TestCase](),
		testStepByID:       orderedmap.New[string, *messages.TestStep](),
		hookByID:           make(map[string]*messages.Hook),
		stepDefinitionByID: orderedmap.New[string, *messages.StepDefinition](),

		testCaseStartedByID:                  orderedmap.New[string, *messages.TestCaseStarted](),
		testCaseFinishedByTestCaseStartedID:  orderedmap.New[string, *messages.TestCaseFinished](),
		testStepsStartedByTestCaseStartedID:  make(map[string][]*messages.TestStepStarted),
		testStepsFinishedByTestCaseStartedID: make(map[string][]*messages.TestStepFinished),
		testRunHookStartedByID:               orderedmap.New[string, *messages.TestRunHookStarted](),
		testRunHookFinishedByStartedID:       orderedmap.New[string, *messages.TestRunHookFinished](),
		attachmentsByTestCaseStartedID:       make(map[string][]*messages.Attachment),
		attachmentsByTestRunHookStartedID:    make(map[string][]*messages.Attachment),
		suggestionsByPickleStepID:            make(map[string][]*messages.Suggestion),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Enabled reports whether an optional category is retained.
func (r *Repository) Enabled(f Feature) bool {
	return r.features.has(f)
}

// Features lists the enabled categories in declaration order.
func (r *Repository) Features() []Feature {
	var out []Feature
	for _, f := range AllFeatures() {
		if r.features.has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Update applies one message. Messages of kinds the store does not track,
// and messages of disabled categories, are ignored.
func (r *Repository) Update(env *messages.Envelope) {
	if env == nil {
		return
	}
	kind := env.Kind()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++

	switch kind {
	case messages.KindMeta:
		r.updateMeta(env.Meta)
	case messages.KindTestRunStarted:
		r.testRunStarted = env.TestRunStarted
	case messages.KindTestRunFinished:
		r.testRunFinished = env.TestRunFinished
	case messages.KindTestCaseStarted:
		r.testCaseStartedByID.Set(env.TestCaseStarted.ID, env.TestCaseStarted)
	case messages.KindTestCaseFinished:
		r.testCaseFinishedByTestCaseStartedID.Set(env.TestCaseFinished.TestCaseStartedID, env.TestCaseFinished)
	case messages.KindTestStepStarted:
		id := env.TestStepStarted.TestCaseStartedID
		r.testStepsStartedByTestCaseStartedID[id] = append(r.testStepsStartedByTestCaseStartedID[id], env.TestStepStarted)
	case messages.KindTestStepFinished:
		id := env.TestStepFinished.TestCaseStartedID
		r.testStepsFinishedByTestCaseStartedID[id] = append(r.testStepsFinishedByTestCaseStartedID[id], env.TestStepFinished)
	case messages.KindTestRunHookStarted:
		r.testRunHookStartedByID.Set(env.TestRunHookStarted.ID, env.TestRunHookStarted)
	case messages.KindTestRunHookFinished:
		r.testRunHookFinishedByStartedID.Set(env.TestRunHookFinished.TestRunHookStartedID, env.TestRunHookFinished)
	case messages.KindPickle:
		r.updatePickle(env.Pickle)
	case messages.KindTestCase:
		r.updateTestCase(env.TestCase)
	case messages.KindGherkinDocument:
		if !r.retains(IncludeGherkinDocuments, kind) {
			return
		}
		r.updateGherkinDocument(env.GherkinDocument)
	case messages.KindStepDefinition:
		if !r.retains(IncludeStepDefinitions, kind) {
			return
		}
		r.stepDefinitionByID.Set(env.StepDefinition.ID, env.StepDefinition)
	case messages.KindHook:
		if !r.retains(IncludeHooks, kind) {
			return
		}
		r.hookByID[env.Hook.ID] = env.Hook
	case messages.KindAttachment:
		if !r.retains(IncludeAttachments, kind) {
			return
		}
		r.updateAttachment(env.Attachment)
	case messages.KindSuggestion:
		if !r.retains(IncludeSuggestions, kind) {
			return
		}
		id := env.Suggestion.PickleStepID
		r.suggestionsByPickleStepID[id] = append(r.suggestionsByPickleStepID[id], env.Suggestion)
	case messages.KindUndefinedParameterType:
		if !r.retains(IncludeUndefinedParameterTypes, kind) {
			return
		}
		r.undefinedParameterTypes = append(r.undefinedParameterTypes, env.UndefinedParameterType)
	default:
		return
	}
	r.log.Debugw("ingested message", logger.FieldMessageKind, string(kind))
}

func (r *Repository) retains(f Feature, kind messages.Kind) bool {
	if r.features.has(f) {
		return true
	}
	r.log.Debugw("skipped disabled category",
		logger.FieldMessageKind, string(kind),
		logger.FieldDisabledCategory, string(f))
	return false
}

func (r *Repository) updateMeta(meta *messages.Meta) {
	r.meta = meta

	version, err := semver.NewVersion(meta.ProtocolVersion)
	if err != nil {
		r.log.Warnw("unparseable protocol version",
			logger.FieldProtocolVersion, meta.ProtocolVersion,
			logger.FieldError, err)
		return
	}
	if r.protocol != nil && !r.protocol.Check(version) {
		r.log.Warnw("unsupported protocol version",
			logger.FieldProtocolVersion, meta.ProtocolVersion,
			"constraint", r.protocol.String())
	}
}

func (r *Repository) updateGherkinDocument(doc *messages.GherkinDocument) {
	r.documents.Set(doc.URI, doc)
	n := r.lineages.Add(doc)

	if feature := doc.Feature; feature != nil {
		for i := range feature.Children {
			child := &feature.Children[i]
			switch {
			case child.Background != nil:
				r.updateSteps(child.Background.Steps)
			case child.Scenario != nil:
				r.updateSteps(child.Scenario.Steps)
			case child.Rule != nil:
				for j := range child.Rule.Children {
					ruleChild := &child.Rule.Children[j]
					if ruleChild.Background != nil {
						r.updateSteps(ruleChild.Background.Steps)
					}
					if ruleChild.Scenario != nil {
						r.updateSteps(ruleChild.Scenario.Steps)
					}
				}
			}
		}
	}
	r.log.Debugw("indexed document", logger.FieldDocument, doc.URI, logger.FieldCount, n)
}

func (r *Repository) updateSteps(steps []messages.Step) {
	for i := range steps {
		r.stepByID[steps[i].ID] = &steps[i]
	}
}

func (r *Repository) updatePickle(pickle *messages.Pickle) {
	r.pickleByID.Set(pickle.ID, pickle)
	for i := range pickle.Steps {
		r.pickleStepByID.Set(pickle.Steps[i].ID, &pickle.Steps[i])
	}
}

func (r *Repository) updateTestCase(testCase *messages.TestCase) {
	r.testCaseByID.Set(testCase.ID, testCase)
	for i := range testCase.TestSteps {
		r.testStepByID.Set(testCase.TestSteps[i].ID, &testCase.TestSteps[i])
	}
}

func (r *Repository) updateAttachment(a *messages.Attachment) {
	switch {
	case a.TestCaseStartedID != "":
		r.attachmentsByTestCaseStartedID[a.TestCaseStartedID] = append(r.attachmentsByTestCaseStartedID[a.TestCaseStartedID], a)
	case a.TestRunHookStartedID != "":
		r.attachmentsByTestRunHookStartedID[a.TestRunHookStartedID] = append(r.attachmentsByTestRunHookStartedID[a.TestRunHookStartedID], a)
	default:
		r.log.Debugw("attachment without owner dropped", logger.FieldFormat, a.MediaType)
	}
}
