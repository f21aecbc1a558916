package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/ssssstella/locallibrary/internal/database"
	"github.com/ssssstella/locallibrary/internal/entities"
)

// renderedView is one c.HTML call captured by recordingRenderer.
type renderedView struct {
	name string
	data gin.H
}

// recordingRenderer replaces the template engine so tests can inspect view models.
type recordingRenderer struct {
	mu    sync.Mutex
	views []renderedView
}

func (r *recordingRenderer) Instance(name string, data any) render.Render {
	h, _ := data.(gin.H)
	r.mu.Lock()
	r.views = append(r.views, renderedView{name: name, data: h})
	r.mu.Unlock()
	return recordedView{name: name}
}

func (r *recordingRenderer) last() renderedView {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.views) == 0 {
		return renderedView{}
	}
	return r.views[len(r.views)-1]
}

func (r *recordingRenderer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

type recordedView struct {
	name string
}

func (v recordedView) Render(w http.ResponseWriter) error {
	v.WriteContentType(w)
	_, err := w.Write([]byte(v.name))
	return err
}

func (v recordedView) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

// mockBookInstanceStore keeps copies in insertion order and applies the
// same defaults and validation as the gorm repository.
type mockBookInstanceStore struct {
	mu        sync.Mutex
	books     map[string]entities.Book
	instances map[string]entities.BookInstance
	order     []string
	nextID    int
	deleted   []string

	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error
}

func newMockBookInstanceStore(books ...entities.Book) *mockBookInstanceStore {
	store := &mockBookInstanceStore{
		books:     make(map[string]entities.Book),
		instances: make(map[string]entities.BookInstance),
	}
	for _, book := range books {
		store.books[book.ID] = book
	}
	return store
}

func (m *mockBookInstanceStore) seed(instance entities.BookInstance) entities.BookInstance {
	if err := m.CreateBookInstance(context.Background(), &instance); err != nil {
		panic(err)
	}
	return instance
}

func (m *mockBookInstanceStore) get(id string) (entities.BookInstance, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	instance, ok := m.instances[id]
	return instance, ok
}

func (m *mockBookInstanceStore) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.instances)
}

func (m *mockBookInstanceStore) populated(instance entities.BookInstance) entities.BookInstance {
	instance.Book = m.books[instance.BookID]
	return instance
}

func (m *mockBookInstanceStore) ListBookInstances(ctx context.Context) ([]entities.BookInstance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}

	result := make([]entities.BookInstance, 0, len(m.order))
	for _, id := range m.order {
		if instance, ok := m.instances[id]; ok {
			result = append(result, m.populated(instance))
		}
	}
	return result, nil
}

func (m *mockBookInstanceStore) GetBookInstance(ctx context.Context, id string) (*entities.BookInstance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}

	instance, ok := m.instances[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	instance = m.populated(instance)
	return &instance, nil
}

func (m *mockBookInstanceStore) CreateBookInstance(ctx context.Context, instance *entities.BookInstance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}

	instance.ApplyDefaults()
	if err := instance.Validate(); err != nil {
		return err
	}

	m.nextID++
	instance.ID = fmt.Sprintf("bi-%d", m.nextID)
	m.instances[instance.ID] = *instance
	m.order = append(m.order, instance.ID)
	return nil
}

func (m *mockBookInstanceStore) UpdateBookInstance(ctx context.Context, instance *entities.BookInstance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}

	instance.ApplyDefaults()
	if err := instance.Validate(); err != nil {
		return err
	}
	if _, ok := m.instances[instance.ID]; !ok {
		return database.ErrNotFound
	}
	m.instances[instance.ID] = *instance
	return nil
}

func (m *mockBookInstanceStore) DeleteBookInstance(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, id)
	if m.deleteErr != nil {
		return false, m.deleteErr
	}
	_, ok := m.instances[id]
	delete(m.instances, id)
	return ok, nil
}

type mockBookTitleLister struct {
	titles []entities.BookTitle
	err    error
}

func (m *mockBookTitleLister) ListBookTitles(ctx context.Context) ([]entities.BookTitle, error) {
	return m.titles, m.err
}

type auditCall struct {
	action entities.AuditAction
	id     string
	err    error
}

type mockAuditor struct {
	mu    sync.Mutex
	calls []auditCall
}

func (m *mockAuditor) record(call auditCall) {
	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()
}

func (m *mockAuditor) LogBookInstanceCreated(ctx context.Context, instance *entities.BookInstance, ipAddr string) {
	m.record(auditCall{action: entities.AuditActionCreate, id: instance.ID})
}

func (m *mockAuditor) LogBookInstanceUpdated(ctx context.Context, instance *entities.BookInstance, ipAddr string) {
	m.record(auditCall{action: entities.AuditActionUpdate, id: instance.ID})
}

func (m *mockAuditor) LogBookInstanceDeleted(ctx context.Context, id, ipAddr string, err error) {
	m.record(auditCall{action: entities.AuditActionDelete, id: id, err: err})
}

// mockFlashStore holds a single pending message regardless of the request.
type mockFlashStore struct {
	message string
}

func (m *mockFlashStore) Flash(r *http.Request, message string) {
	m.message = message
}

func (m *mockFlashStore) PopFlash(r *http.Request) string {
	message := m.message
	m.message = ""
	return message
}
