package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevinjones/trialsift/internal/core/domain"
)

// captureSink records what the pipeline writes.
type captureSink struct {
	path    string
	studies []domain.Study
	column  string
	err     error
}

func (s *captureSink) Write(path string, studies []domain.Study, column string) error {
	s.path = path
	s.studies = studies
	s.column = column
	return s.err
}

func trialPage(next string, trials ...func(*domain.RawStudy)) *domain.StudyPage {
	page := &domain.StudyPage{NextPageToken: next}
	for _, build := range trials {
		raw := domain.RawStudy{}
		build(&raw)
		page.Studies = append(page.Studies, raw)
	}
	return page
}

func trial(nctID, sex, minAge string) func(*domain.RawStudy) {
	return func(raw *domain.RawStudy) {
		raw.ProtocolSection.Identification.NCTID = nctID
		raw.ProtocolSection.Eligibility.Sex = sex
		raw.ProtocolSection.Eligibility.MinimumAge = minAge
	}
}

func TestPipelineRun(t *testing.T) {
	t.Run("extracts, filters, enriches and writes in sequence", func(t *testing.T) {
		// Three pages of 2, 2 and 1 records, last with no cursor.
		registry := &fakeRegistry{pages: map[string]*domain.StudyPage{
			"": trialPage("tok-1",
				trial("NCT001", "FEMALE", "70 Years"),
				trial("NCT002", "ALL", "30 Years")),
			"tok-1": trialPage("tok-2",
				trial("NCT003", "MALE", "40 Years"),
				trial("NCT004", "FEMALE", "")),
			"tok-2": trialPage("",
				trial("NCT005", "ALL", "18 Years")),
		}}
		classifier := &fakeClassifier{response: "NOT MENTIONED"}
		sink := &captureSink{}

		pipeline := &Pipeline{
			Registry:   registry,
			Classifier: classifier,
			Sink:       sink,
			Normaliser: NewNormaliser(),
		}

		report, err := pipeline.Run(context.Background(), RunOptions{
			Enrichment:       &EnrichOptions{PromptTemplate: "{nct_id}"},
			EnrichmentColumn: "ai_determined_value",
			OutputPath:       "out.csv",
		})
		require.NoError(t, err)

		assert.Equal(t, 5, report.Fetched)
		assert.Equal(t, 3, report.Pages)
		assert.Equal(t, 4, report.Kept)
		assert.Equal(t, 1, report.DroppedMaleOnly)
		require.NotNil(t, report.Enrich)
		assert.Equal(t, 4, report.Enrich.Succeeded)

		assert.Equal(t, "out.csv", sink.path)
		assert.Equal(t, "ai_determined_value", sink.column)
		require.Len(t, sink.studies, 4)
		// The male-only NCT003 is gone; everything else kept input order.
		ids := make([]string, 0, len(sink.studies))
		for i := range sink.studies {
			ids = append(ids, sink.studies[i].NCTID)
		}
		assert.Equal(t, []string{"NCT001", "NCT002", "NCT004", "NCT005"}, ids)

		// The geriatric predicate flags only the 70-year minimum.
		assert.True(t, sink.studies[0].IsGeriatric())
		assert.False(t, sink.studies[1].IsGeriatric())
		assert.False(t, sink.studies[2].IsGeriatric())
	})

	t.Run("extraction failure is fatal with no output", func(t *testing.T) {
		registry := &fakeRegistry{pages: map[string]*domain.StudyPage{}}
		sink := &captureSink{}

		pipeline := &Pipeline{Registry: registry, Sink: sink, Normaliser: NewNormaliser()}

		_, err := pipeline.Run(context.Background(), RunOptions{OutputPath: "out.csv"})
		require.Error(t, err)
		assert.Empty(t, sink.path, "sink must not be written on extraction failure")
	})

	t.Run("empty post-filter set is an error", func(t *testing.T) {
		registry := &fakeRegistry{pages: map[string]*domain.StudyPage{
			"": trialPage("", trial("NCT001", domain.GenderMaleOnly, "")),
		}}
		sink := &captureSink{}

		pipeline := &Pipeline{Registry: registry, Sink: sink, Normaliser: NewNormaliser()}

		report, err := pipeline.Run(context.Background(), RunOptions{OutputPath: "out.csv"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNoStudies)
		assert.Equal(t, 1, report.DroppedMaleOnly)
		assert.Empty(t, sink.path)
	})

	t.Run("runs without enrichment when the stage is disabled", func(t *testing.T) {
		registry := &fakeRegistry{pages: map[string]*domain.StudyPage{
			"": trialPage("", trial("NCT001", "FEMALE", "")),
		}}
		sink := &captureSink{}

		pipeline := &Pipeline{Registry: registry, Sink: sink, Normaliser: NewNormaliser()}

		report, err := pipeline.Run(context.Background(), RunOptions{OutputPath: "out.csv"})
		require.NoError(t, err)

		assert.Nil(t, report.Enrich)
		assert.Empty(t, sink.column)
		require.Len(t, sink.studies, 1)
		assert.False(t, sink.studies[0].Classified)
	})

	t.Run("sink failure propagates", func(t *testing.T) {
		registry := &fakeRegistry{pages: map[string]*domain.StudyPage{
			"": trialPage("", trial("NCT001", "FEMALE", "")),
		}}
		sink := &captureSink{err: errors.New("disk full")}

		pipeline := &Pipeline{Registry: registry, Sink: sink, Normaliser: NewNormaliser()}

		_, err := pipeline.Run(context.Background(), RunOptions{OutputPath: "out.csv"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("surfaces the resume token from a ceiling-limited walk", func(t *testing.T) {
		looping := registryFunc(func(_ context.Context, _ string) (*domain.StudyPage, error) {
			return trialPage("again", trial("NCT001", "FEMALE", "")), nil
		})
		sink := &captureSink{}

		pipeline := &Pipeline{Registry: looping, Sink: sink, Normaliser: NewNormaliser()}

		report, err := pipeline.Run(context.Background(), RunOptions{OutputPath: "out.csv"})
		require.NoError(t, err)
		assert.Equal(t, "again", report.ResumeToken)
		assert.Equal(t, MaxPages, report.Pages)
	})
}
