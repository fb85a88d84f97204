// Package pipeline sequences the build: load, normalize, render, write,
// verify. Stages run strictly in order with no feedback loops; the first
// error aborts the remaining stages and fails the run.
package pipeline

import (
	stderrors "errors"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/campuseats/sitebuilder/internal/catalog"
	"github.com/campuseats/sitebuilder/internal/foundation/errors"
	"github.com/campuseats/sitebuilder/internal/jsonc"
	"github.com/campuseats/sitebuilder/internal/linkverify"
	"github.com/campuseats/sitebuilder/internal/logfields"
	"github.com/campuseats/sitebuilder/internal/render"
	"github.com/campuseats/sitebuilder/internal/site"
)

// Options locates the run's inputs and output.
type Options struct {
	RestaurantsPath string
	HomepagePath    string
	TemplatePath    string
	OutputDir       string
	SiteTitle       string
}

// RenderedPage is an ephemeral (kind, identity, text) triple: created during
// the render stage, written once, then discarded with the run.
type RenderedPage struct {
	Kind    string
	ID      string
	Content string
}

// State carries data between stages for a single run.
type State struct {
	RunID string
	Opts  Options

	RestaurantsDoc *jsonc.Document
	HomepageDoc    *jsonc.Document // nil when no homepage file was supplied

	Catalog  *catalog.Catalog
	Renderer *render.Renderer
	Rendered []RenderedPage
	Written  []string
}

// Stage is a discrete unit of work in the run.
type Stage func(*State) error

type namedStage struct {
	name string
	fn   Stage
}

var buildStages = []namedStage{
	{"load", stageLoad},
	{"normalize", stageNormalize},
	{"render", stageRender},
	{"write", stageWrite},
	{"verify", stageVerify},
}

var validateStages = []namedStage{
	{"load", stageLoad},
	{"normalize", stageNormalize},
}

// Build runs the full pipeline: every targeted page is produced or the run
// fails. Files written before a failure stay on disk; there is no rollback.
func Build(opts Options) error {
	return run(opts, buildStages)
}

// Validate runs the load and normalize stages only, writing nothing.
func Validate(opts Options) error {
	return run(opts, validateStages)
}

func run(opts Options, stages []namedStage) error {
	st := &State{RunID: uuid.NewString(), Opts: opts}
	logger := slog.Default().With(logfields.RunID(st.RunID))

	start := time.Now()
	for _, stage := range stages {
		t0 := time.Now()
		if err := stage.fn(st); err != nil {
			logger.Error("stage failed",
				logfields.Stage(stage.name),
				logfields.Error(err))
			return err
		}
		logger.Debug("stage complete",
			logfields.Stage(stage.name),
			logfields.DurationMS(float64(time.Since(t0).Microseconds())/1000))
	}
	logger.Info("run complete",
		logfields.Count(len(st.Written)),
		logfields.Output(opts.OutputDir),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return nil
}

func stageLoad(st *State) error {
	doc, err := jsonc.Load(st.Opts.RestaurantsPath)
	if err != nil {
		return err
	}
	st.RestaurantsDoc = doc

	// A missing homepage file simply means no homepage page; anything else
	// wrong with it (unreadable, malformed) is a real failure.
	switch _, statErr := os.Stat(st.Opts.HomepagePath); {
	case statErr == nil:
		hp, err := jsonc.Load(st.Opts.HomepagePath)
		if err != nil {
			return err
		}
		st.HomepageDoc = hp
	case stderrors.Is(statErr, fs.ErrNotExist):
		slog.Debug("no homepage data file, skipping homepage page",
			logfields.Path(st.Opts.HomepagePath))
	default:
		return errors.WrapError(statErr, errors.CategoryParse, "failed to stat homepage data file").
			WithContext("path", st.Opts.HomepagePath).Build()
	}
	return nil
}

func stageNormalize(st *State) error {
	cat, err := catalog.Normalize(st.RestaurantsDoc)
	if err != nil {
		return err
	}
	if st.HomepageDoc != nil {
		hp, err := catalog.NormalizeHomepage(st.HomepageDoc)
		if err != nil {
			return err
		}
		cat.Homepage = hp
	}
	st.Catalog = cat
	return nil
}

// stageRender produces every targeted page in memory before anything is
// written: one page per entity, the listing page, and the homepage iff
// homepage data was supplied.
func stageRender(st *State) error {
	r, err := render.NewRendererFromFile(st.Opts.TemplatePath)
	if err != nil {
		return err
	}
	st.Renderer = r

	pages := make([]render.Page, 0, st.Catalog.Len()+2)
	for i := range st.Catalog.Restaurants {
		page, err := render.EntityPage(st.Catalog, i)
		if err != nil {
			return err
		}
		pages = append(pages, page)
	}
	pages = append(pages, render.ListingPage(st.Opts.SiteTitle, st.Catalog))
	if st.Catalog.Homepage != nil {
		pages = append(pages, render.HomepagePage(st.Catalog))
	}

	st.Rendered = make([]RenderedPage, 0, len(pages))
	for _, page := range pages {
		content, err := r.Render(page)
		if err != nil {
			return err
		}
		st.Rendered = append(st.Rendered, RenderedPage{Kind: page.Kind, ID: page.ID, Content: content})
	}
	return nil
}

func stageWrite(st *State) error {
	for _, page := range st.Rendered {
		path, err := site.WritePage(st.Opts.OutputDir, page.Kind, page.ID, page.Content)
		if err != nil {
			return err
		}
		st.Written = append(st.Written, path)
		slog.Debug("wrote page", logfields.Page(page.ID), logfields.Path(path))
	}
	return nil
}

// stageVerify re-reads the written tree and checks intra-site links. Broken
// links are warnings: the files are already on disk, and a bad
// cross-reference should not retroactively fail the run.
func stageVerify(st *State) error {
	problems, err := linkverify.VerifyTree(st.Opts.OutputDir, st.Written)
	if err != nil {
		return err
	}
	for _, p := range problems {
		slog.Warn("page links to a missing file",
			logfields.Path(p.Page),
			slog.String("target", p.Target))
	}
	return nil
}
