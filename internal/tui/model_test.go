package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/prevsim/internal/calculation"
	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/rgehrsitz/prevsim/pkg/dateutil"
)

func testDraft() *domain.SimulationDraft {
	birth := dateutil.Date(1963, 6, 1)
	draft := domain.NewSimulationDraft("draft-1", dateutil.Date(2025, 1, 1))
	draft.Claimant = domain.BasicClaimantData{
		Sex:        domain.SexFemale,
		BirthDate:  &birth,
		FilingDate: dateutil.Date(2025, 1, 1),
	}
	draft.Periods = []domain.ContributionPeriod{{
		ID:                           "p1",
		Start:                        dateutil.Date(2000, 1, 1),
		End:                          dateutil.Date(2019, 12, 31),
		Category:                     domain.CategoryCommon,
		CountsTowardQualifyingPeriod: true,
		Source:                       domain.SourceManual,
		OverlapStatus:                domain.OverlapOK,
	}}
	for i := 0; i < 12; i++ {
		draft.Wages = append(draft.Wages, domain.WageRecord{
			ID:         fmt.Sprintf("w%d", i),
			Competency: fmt.Sprintf("2019-%02d", i+1),
			Amount:     decimal.NewFromInt(3000),
			Currency:   domain.DefaultCurrency,
			Source:     domain.SourceManual,
		})
	}
	return draft
}

func testEngine() *calculation.SimulationEngine {
	engine := calculation.NewSimulationEngine()
	engine.SetClock(func() time.Time { return dateutil.Date(2025, 2, 1) })
	engine.SetIDGenerator(func() string { return "sim-1" })
	return engine
}

// loadedModel returns a model that has already received its first simulation
func loadedModel(t *testing.T) Model {
	t.Helper()
	engine := testEngine()
	m := NewModel("draft.yaml", engine)
	updated, _ := m.Update(simulate(engine, testDraft(), 0))
	return updated.(Model)
}

func press(m Model, keys string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch keys {
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func TestNewModel_StartsLoading(t *testing.T) {
	m := NewModel("draft.yaml", nil)

	assert.Equal(t, SceneHome, m.CurrentScene())
	assert.True(t, m.loading)
	assert.NotNil(t, m.engine)
	assert.Contains(t, m.View(), "Loading draft...")
}

func TestLoadDraftCmd_MissingFile(t *testing.T) {
	msg := loadDraftCmd("does-not-exist.yaml", testEngine())()

	errMsg, ok := msg.(ErrorMsg)
	require.True(t, ok, "expected ErrorMsg, got %T", msg)
	assert.Error(t, errMsg.Err)
}

func TestUpdate_SimulationComplete(t *testing.T) {
	m := loadedModel(t)

	require.NotNil(t, m.Result())
	assert.False(t, m.loading)
	assert.Len(t, m.Result().Scenarios, 1)

	view := m.View()
	assert.Contains(t, view, "PREVSIM - Benefit Simulation")
	assert.Contains(t, view, "Methodology")
	assert.Contains(t, view, "[draft-1]")
}

func TestUpdate_Navigation(t *testing.T) {
	m := loadedModel(t)

	m, cmd := press(m, "r")
	require.NotNil(t, cmd)
	updated, _ := m.Update(cmd())
	m = updated.(Model)
	assert.Equal(t, SceneRules, m.CurrentScene())

	m, cmd = press(m, "c")
	updated, _ = m.Update(cmd())
	m = updated.(Model)
	assert.Equal(t, SceneCompare, m.CurrentScene())

	m, cmd = press(m, "esc")
	updated, _ = m.Update(cmd())
	m = updated.(Model)
	assert.Equal(t, SceneRules, m.CurrentScene())

	m, cmd = press(m, "?")
	updated, _ = m.Update(cmd())
	m = updated.(Model)
	assert.Equal(t, SceneHelp, m.CurrentScene())
	assert.Contains(t, m.View(), "KEYBOARD SHORTCUTS")
}

func TestUpdate_QuitKey(t *testing.T) {
	m := loadedModel(t)

	_, cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestUpdate_ReaffirmShiftResimulates(t *testing.T) {
	m := loadedModel(t)

	updated, cmd := m.Update(ReaffirmShiftMsg{Delta: 12})
	m = updated.(Model)
	assert.True(t, m.loading)
	require.NotNil(t, cmd)

	msg := cmd()
	done, ok := msg.(SimulationCompleteMsg)
	require.True(t, ok, "expected SimulationCompleteMsg, got %T", msg)
	assert.Equal(t, 12, done.ReaffirmMonths)

	updated, _ = m.Update(done)
	m = updated.(Model)
	require.Len(t, m.Result().Scenarios, 2)

	reaffirmed, ok := m.Result().Scenario(domain.FilingDateReaffirmed)
	require.True(t, ok)
	assert.Equal(t, "2026-01-01", dateutil.FormatDate(reaffirmed.FilingDate))
	require.NotNil(t, reaffirmed.BestEligibleOption)
	assert.Equal(t, domain.RuleAgeBased, reaffirmed.BestEligibleOption.RuleID)

	// the stored draft itself is never modified
	assert.Nil(t, m.draft.Claimant.ReaffirmedFilingDate)

	require.NotNil(t, m.compareModel.Comparison())
	assert.Equal(t, "3000.00", m.compareModel.Comparison().BestDiff.StringFixed(2))
}

func TestUpdate_ReaffirmShiftNeverNegative(t *testing.T) {
	m := loadedModel(t)

	_, cmd := m.Update(ReaffirmShiftMsg{Delta: -3})
	require.NotNil(t, cmd)
	done := cmd().(SimulationCompleteMsg)
	assert.Equal(t, 0, done.ReaffirmMonths)
	assert.Len(t, done.Result.Scenarios, 1)
}

func TestUpdate_ErrorThenRecover(t *testing.T) {
	m := loadedModel(t)

	updated, _ := m.Update(ErrorMsg{Err: fmt.Errorf("boom")})
	m = updated.(Model)
	assert.Contains(t, m.View(), "Error: boom")
	assert.Contains(t, m.View(), "Press any key to continue")

	m, _ = press(m, "x")
	assert.Nil(t, m.err)
	assert.False(t, strings.Contains(m.View(), "boom"))
}

func TestUpdate_RuleSelected(t *testing.T) {
	m := loadedModel(t)
	m.currentScene = SceneRules

	updated, _ := m.Update(RuleSelectedMsg{RuleID: domain.RuleAgeBased})
	m = updated.(Model)
	assert.Contains(t, m.View(), "Rules / "+string(domain.RuleAgeBased))
}
