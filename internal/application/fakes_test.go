package application_test

import (
	"context"
	"sync"

	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/domain/mascota"
)

// fakeGateway records calls and returns canned results.
type fakeGateway struct {
	mu sync.Mutex

	uploadURL string
	uploadErr error
	saveErr   error
	saveID    int64
	listItems []mascota.Mascota
	listErr   error

	// block, when set, is waited on inside Create so tests can overlap submits.
	block chan struct{}

	uploads   []*mascota.Image
	creates   []mascota.Draft
	updates   map[int64]mascota.Draft
	listCalls int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		uploadURL: "/uploads/abc.jpg",
		saveID:    1,
		updates:   map[int64]mascota.Draft{},
	}
}

func (g *fakeGateway) UploadImage(_ context.Context, img *mascota.Image) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.uploads = append(g.uploads, img)
	if g.uploadErr != nil {
		return "", g.uploadErr
	}
	return g.uploadURL, nil
}

func (g *fakeGateway) Create(_ context.Context, draft mascota.Draft) (*mascota.SaveResult, error) {
	if g.block != nil {
		<-g.block
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.creates = append(g.creates, draft)
	if g.saveErr != nil {
		return nil, g.saveErr
	}
	return &mascota.SaveResult{ID: g.saveID, Message: "Mascota creada exitosamente"}, nil
}

func (g *fakeGateway) Update(_ context.Context, id int64, draft mascota.Draft) (*mascota.SaveResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.updates[id] = draft
	if g.saveErr != nil {
		return nil, g.saveErr
	}
	return &mascota.SaveResult{ID: id}, nil
}

func (g *fakeGateway) List(_ context.Context) ([]mascota.Mascota, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listCalls++
	if g.listErr != nil {
		return nil, g.listErr
	}
	return g.listItems, nil
}

// countingRefresher counts refresh requests.
type countingRefresher struct {
	mu    sync.Mutex
	calls int
}

func (r *countingRefresher) Refresh(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return nil
}

func (r *countingRefresher) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// recordingPublisher collects published intake events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []mascota.IntakeEvent
	err    error
}

func (p *recordingPublisher) PublishIntake(_ context.Context, evt mascota.IntakeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}
