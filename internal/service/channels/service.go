package channels

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/ignite/brandhub/internal/domain"
)

// Sub-resource names, used in RowsResult.Errs and ApplyResult.
const (
	SubConfig   = "config"
	SubSchedule = "schedule"
	SubStyle    = "style"
)

// RowPatch holds a row edit across ownership boundaries. Nil fields are not
// applied. The service routes each field to its owning sub-resource; the
// caller never needs to know which one that is.
type RowPatch struct {
	// ChannelConfig fields.
	Enabled  *bool   `json:"enabled"`
	Handle   *string `json:"handle"`
	Audience *string `json:"audience"`

	// PostingSchedule fields.
	Frequency *string `json:"frequency"`
	Days      *string `json:"days"`
	TimeOfDay *string `json:"time_of_day"`
	Timezone  *string `json:"timezone"`

	// CommunicationStyle fields.
	Tone         *string `json:"tone"`
	UseEmojis    *bool   `json:"use_emojis"`
	HashtagStyle *string `json:"hashtag_style"`
	Language     *string `json:"language"`
}

// RowsResult carries merged rows plus per-sub-resource load failures. A
// failed sub-resource contributes defaults to every row instead of
// blocking the fields the other two own.
type RowsResult struct {
	Rows []domain.ChannelRow `json:"rows"`
	Errs map[string]string   `json:"errors,omitempty"`
}

// ApplyResult reports the fan-out outcome of one row edit. Sub-resources
// with no changed fields are absent from both maps (no write issued).
type ApplyResult struct {
	Written map[string]bool   `json:"written"`
	Errs    map[string]string `json:"errors,omitempty"`
}

// Ok reports whether every issued write succeeded.
func (r *ApplyResult) Ok() bool {
	return len(r.Errs) == 0
}

// Service merges and routes channel settings. All public methods are safe
// for concurrent use if the underlying repository is concurrency-safe.
type Service struct {
	repo Repository
}

// NewService creates a channels service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Rows returns one merged row per supported platform. The three backing
// lists are fetched concurrently; a sub-resource that fails to load is
// reported in Errs and contributes defaults only.
func (s *Service) Rows(ctx context.Context, companyID string) (*RowsResult, error) {
	if companyID == "" {
		return nil, fmt.Errorf("company id is required")
	}

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		configs   []domain.ChannelConfig
		schedules []domain.PostingSchedule
		styles    []domain.CommunicationStyle
		errs      = map[string]string{}
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		rows, err := s.repo.ListConfigs(ctx, companyID)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			log.Printf("[channels.Service] list configs for company %s: %v", companyID, err)
			errs[SubConfig] = err.Error()
			return
		}
		configs = rows
	}()
	go func() {
		defer wg.Done()
		rows, err := s.repo.ListSchedules(ctx, companyID)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			log.Printf("[channels.Service] list schedules for company %s: %v", companyID, err)
			errs[SubSchedule] = err.Error()
			return
		}
		schedules = rows
	}()
	go func() {
		defer wg.Done()
		rows, err := s.repo.ListStyles(ctx, companyID)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			log.Printf("[channels.Service] list styles for company %s: %v", companyID, err)
			errs[SubStyle] = err.Error()
			return
		}
		styles = rows
	}()
	wg.Wait()

	configByPlatform := map[domain.Platform]domain.ChannelConfig{}
	for _, c := range configs {
		configByPlatform[c.Platform] = c
	}
	scheduleByPlatform := map[domain.Platform]domain.PostingSchedule{}
	for _, sch := range schedules {
		scheduleByPlatform[sch.Platform] = sch
	}
	styleByPlatform := map[domain.Platform]domain.CommunicationStyle{}
	for _, st := range styles {
		styleByPlatform[st.Platform] = st
	}

	out := make([]domain.ChannelRow, 0, len(domain.Platforms))
	for _, p := range domain.Platforms {
		row := domain.ChannelRow{Platform: p}
		if c, ok := configByPlatform[p]; ok {
			row.Enabled = c.Enabled
			row.Handle = c.Handle
			row.Audience = c.Audience
		}
		if sch, ok := scheduleByPlatform[p]; ok {
			row.Frequency = sch.Frequency
			row.Days = sch.Days
			row.TimeOfDay = sch.TimeOfDay
			row.Timezone = sch.Timezone
		}
		if st, ok := styleByPlatform[p]; ok {
			row.Tone = st.Tone
			row.UseEmojis = st.UseEmojis
			row.HashtagStyle = st.HashtagStyle
			row.Language = st.Language
		}
		out = append(out, row)
	}

	if len(errs) == 0 {
		errs = nil
	}
	return &RowsResult{Rows: out, Errs: errs}, nil
}

// Apply routes one row edit to the owning sub-resources. Each sub-resource
// slice is diffed against its stored row and written only if something
// actually changed; the up-to-three writes run independently with no
// ordering guarantee, and partial failure is reported per sub-resource.
func (s *Service) Apply(ctx context.Context, companyID string, platform domain.Platform, patch RowPatch) (*ApplyResult, error) {
	if !platform.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}

	res := &ApplyResult{Written: map[string]bool{}, Errs: map[string]string{}}
	var mu sync.Mutex
	var wg sync.WaitGroup

	record := func(sub string, wrote bool, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			log.Printf("[channels.Service] write %s for company %s platform %s: %v", sub, companyID, platform, err)
			res.Errs[sub] = err.Error()
			return
		}
		if wrote {
			res.Written[sub] = true
		}
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		wrote, err := s.applyConfig(ctx, companyID, platform, patch)
		record(SubConfig, wrote, err)
	}()
	go func() {
		defer wg.Done()
		wrote, err := s.applySchedule(ctx, companyID, platform, patch)
		record(SubSchedule, wrote, err)
	}()
	go func() {
		defer wg.Done()
		wrote, err := s.applyStyle(ctx, companyID, platform, patch)
		record(SubStyle, wrote, err)
	}()
	wg.Wait()

	if len(res.Errs) == 0 {
		res.Errs = nil
	}
	return res, nil
}

// applyConfig writes the config-owned slice of the patch, if any of it
// changed. A missing row is created with defaults first.
func (s *Service) applyConfig(ctx context.Context, companyID string, platform domain.Platform, p RowPatch) (bool, error) {
	if p.Enabled == nil && p.Handle == nil && p.Audience == nil {
		return false, nil
	}
	cur, err := s.repo.GetConfig(ctx, companyID, platform)
	if errors.Is(err, ErrNotFound) {
		cur = &domain.ChannelConfig{ID: uuid.New().String(), CompanyID: companyID, Platform: platform}
	} else if err != nil {
		return false, err
	}

	dirty := false
	if p.Enabled != nil && *p.Enabled != cur.Enabled {
		cur.Enabled = *p.Enabled
		dirty = true
	}
	if p.Handle != nil && *p.Handle != cur.Handle {
		cur.Handle = *p.Handle
		dirty = true
	}
	if p.Audience != nil && *p.Audience != cur.Audience {
		cur.Audience = *p.Audience
		dirty = true
	}
	if !dirty {
		return false, nil
	}
	return true, s.repo.SaveConfig(ctx, cur)
}

func (s *Service) applySchedule(ctx context.Context, companyID string, platform domain.Platform, p RowPatch) (bool, error) {
	if p.Frequency == nil && p.Days == nil && p.TimeOfDay == nil && p.Timezone == nil {
		return false, nil
	}
	cur, err := s.repo.GetSchedule(ctx, companyID, platform)
	if errors.Is(err, ErrNotFound) {
		cur = &domain.PostingSchedule{ID: uuid.New().String(), CompanyID: companyID, Platform: platform}
	} else if err != nil {
		return false, err
	}

	dirty := false
	if p.Frequency != nil && *p.Frequency != cur.Frequency {
		cur.Frequency = *p.Frequency
		dirty = true
	}
	if p.Days != nil && *p.Days != cur.Days {
		cur.Days = *p.Days
		dirty = true
	}
	if p.TimeOfDay != nil && *p.TimeOfDay != cur.TimeOfDay {
		cur.TimeOfDay = *p.TimeOfDay
		dirty = true
	}
	if p.Timezone != nil && *p.Timezone != cur.Timezone {
		cur.Timezone = *p.Timezone
		dirty = true
	}
	if !dirty {
		return false, nil
	}
	return true, s.repo.SaveSchedule(ctx, cur)
}

func (s *Service) applyStyle(ctx context.Context, companyID string, platform domain.Platform, p RowPatch) (bool, error) {
	if p.Tone == nil && p.UseEmojis == nil && p.HashtagStyle == nil && p.Language == nil {
		return false, nil
	}
	cur, err := s.repo.GetStyle(ctx, companyID, platform)
	if errors.Is(err, ErrNotFound) {
		cur = &domain.CommunicationStyle{ID: uuid.New().String(), CompanyID: companyID, Platform: platform}
	} else if err != nil {
		return false, err
	}

	dirty := false
	if p.Tone != nil && *p.Tone != cur.Tone {
		cur.Tone = *p.Tone
		dirty = true
	}
	if p.UseEmojis != nil && *p.UseEmojis != cur.UseEmojis {
		cur.UseEmojis = *p.UseEmojis
		dirty = true
	}
	if p.HashtagStyle != nil && *p.HashtagStyle != cur.HashtagStyle {
		cur.HashtagStyle = *p.HashtagStyle
		dirty = true
	}
	if p.Language != nil && *p.Language != cur.Language {
		cur.Language = *p.Language
		dirty = true
	}
	if !dirty {
		return false, nil
	}
	return true, s.repo.SaveStyle(ctx, cur)
}
