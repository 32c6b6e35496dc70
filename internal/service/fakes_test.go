package service

import (
	"context"
	"io"
	"sync"

	"github.com/biocomp/qbank-backend/internal/model"
	"github.com/biocomp/qbank-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var testLog = zerolog.New(io.Discard)

// fakeQuestionStore keeps questions in memory.
type fakeQuestionStore struct {
	mu        sync.Mutex
	nextID    int
	questions map[int]*model.Question
	created   []*model.CreateQuestionRequest
	updated   []*model.UpdateQuestionRequest
	createErr error
	total     int
	lastLimit int
	lastOff   int
	listCalls int
}

func newFakeQuestionStore() *fakeQuestionStore {
	return &fakeQuestionStore{questions: map[int]*model.Question{}}
}

func (f *fakeQuestionStore) Create(_ context.Context, req *model.CreateQuestionRequest) (int, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.created = append(f.created, req)
	q := &model.Question{ID: f.nextID, TypeID: req.TypeID, Stem: req.Stem, Answer: req.Answer, Explanation: req.Explanation}
	for _, o := range req.Options {
		q.Options = append(q.Options, model.Option{OptLabel: o.OptLabel, OptContent: o.OptContent, IsCorrect: o.IsCorrect})
	}
	f.questions[f.nextID] = q
	return f.nextID, nil
}

func (f *fakeQuestionStore) GetByID(_ context.Context, id int) (*model.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.questions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *q
	return &cp, nil
}

func (f *fakeQuestionStore) Update(_ context.Context, id int, req *model.UpdateQuestionRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	q, ok := f.questions[id]
	if !ok {
		return repository.ErrNotFound
	}
	f.updated = append(f.updated, req)
	if req.Stem.Set {
		q.Stem = *req.Stem.Value
	}
	if req.Answer.Set {
		q.Answer = req.Answer.Value
	}
	return nil
}

func (f *fakeQuestionStore) Delete(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.questions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.questions, id)
	return nil
}

func (f *fakeQuestionStore) List(_ context.Context, _ model.QuestionFilter, limit, offset int) ([]model.Question, error) {
	f.listCalls++
	f.lastLimit, f.lastOff = limit, offset
	n := f.total - offset
	if n > limit {
		n = limit
	}
	out := make([]model.Question, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, model.Question{ID: offset + i + 1})
	}
	return out, nil
}

func (f *fakeQuestionStore) Count(context.Context, model.QuestionFilter) (int, error) {
	return f.total, nil
}

type fakeMaterialStore struct {
	materials map[int]*model.Material
	created   []*model.CreateMaterialRequest
	updates   int
	updateErr error
}

func (f *fakeMaterialStore) Create(_ context.Context, req *model.CreateMaterialRequest) (int, error) {
	f.created = append(f.created, req)
	id := len(f.created)
	if f.materials == nil {
		f.materials = map[int]*model.Material{}
	}
	f.materials[id] = &model.Material{ID: id, Content: req.Content, Title: req.Title}
	return id, nil
}

func (f *fakeMaterialStore) GetByID(_ context.Context, id int) (*model.Material, error) {
	m, ok := f.materials[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return m, nil
}

func (f *fakeMaterialStore) Update(_ context.Context, id int, _ *model.UpdateMaterialRequest) error {
	if _, ok := f.materials[id]; !ok {
		return repository.ErrNotFound
	}
	f.updates++
	return f.updateErr
}

func (f *fakeMaterialStore) Delete(_ context.Context, id int) error {
	if _, ok := f.materials[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.materials, id)
	return nil
}

func (f *fakeMaterialStore) List(context.Context, int, int) ([]model.Material, error) {
	return []model.Material{}, nil
}

func (f *fakeMaterialStore) ListByQuestion(context.Context, int) ([]model.Material, error) {
	return []model.Material{}, nil
}

func (f *fakeMaterialStore) Count(context.Context) (int, error) { return len(f.materials), nil }

// fakeSourceStore models sources with a usage counter per id.
type fakeSourceStore struct {
	sources map[int]*model.Source
	usage   map[int]int
	deleted []int
}

func newFakeSourceStore(names ...string) *fakeSourceStore {
	f := &fakeSourceStore{sources: map[int]*model.Source{}, usage: map[int]int{}}
	for i, n := range names {
		f.sources[i+1] = &model.Source{ID: i + 1, SourceName: n}
	}
	return f
}

func (f *fakeSourceStore) List(context.Context, string) ([]model.Source, error) {
	return []model.Source{}, nil
}

func (f *fakeSourceStore) GetByID(_ context.Context, id int) (*model.Source, error) {
	s, ok := f.sources[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSourceStore) NameTaken(_ context.Context, name string, excludeID int) (bool, error) {
	for id, s := range f.sources {
		if id != excludeID && s.SourceName == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSourceStore) Create(_ context.Context, name string) (*model.Source, error) {
	id := len(f.sources) + 1
	f.sources[id] = &model.Source{ID: id, SourceName: name}
	return f.sources[id], nil
}

func (f *fakeSourceStore) Rename(_ context.Context, id int, name string) error {
	f.sources[id].SourceName = name
	return nil
}

func (f *fakeSourceStore) UsageCount(_ context.Context, id int) (int, error) {
	return f.usage[id], nil
}

func (f *fakeSourceStore) Delete(_ context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	delete(f.sources, id)
	return nil
}

type fakeDraftStore struct {
	drafts map[uuid.UUID]*model.PaperDraft
}

func (f *fakeDraftStore) Save(_ context.Context, d *model.PaperDraft) error {
	if f.drafts == nil {
		f.drafts = map[uuid.UUID]*model.PaperDraft{}
	}
	f.drafts[d.ID] = d
	return nil
}

func (f *fakeDraftStore) Get(_ context.Context, id uuid.UUID) (*model.PaperDraft, error) {
	d, ok := f.drafts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return d, nil
}

func (f *fakeDraftStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.drafts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.drafts, id)
	return nil
}
