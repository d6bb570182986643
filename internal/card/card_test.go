package card

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dropin/internal/config"
	"dropin/internal/dom"
	"dropin/internal/gateway"
	"dropin/internal/hostedfields"
)

// recordingModel captures every shell signal the view emits.
type recordingModel struct {
	mu sync.Mutex

	starting   int
	ready      int
	failedView string
	failedErr  error

	added    []*hostedfields.Payload
	reported []error
	cleared  int

	requestable []requestableCall

	guest bool
}

type requestableCall struct {
	isRequestable bool
	paymentMethod string
}

func (m *recordingModel) AsyncDependencyStarting() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.starting++
}

func (m *recordingModel) AsyncDependencyReady() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ready++
}

func (m *recordingModel) AsyncDependencyFailed(view string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failedView = view
	m.failedErr = err
}

func (m *recordingModel) AddPaymentMethod(payload *hostedfields.Payload) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.added = append(m.added, payload)
}

func (m *recordingModel) ReportError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reported = append(m.reported, err)
}

func (m *recordingModel) ClearError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleared++
}

func (m *recordingModel) SetPaymentMethodRequestable(isRequestable bool, paymentMethodType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestable = append(m.requestable, requestableCall{isRequestable, paymentMethodType})
}

func (m *recordingModel) IsGuestCheckout() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.guest
}

func (m *recordingModel) lastRequestable() (requestableCall, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requestable) == 0 {
		return requestableCall{}, false
	}
	return m.requestable[len(m.requestable)-1], true
}

// fakeInstance is a scriptable hosted fields provider.
type fakeInstance struct {
	mu       sync.Mutex
	handlers map[hostedfields.EventKind][]func(hostedfields.Event)
	state    hostedfields.State

	payload     *hostedfields.Payload
	tokenizeErr error
	tokenized   []hostedfields.TokenizeOptions

	attrs    []hostedfields.AttributeOptions
	removals []hostedfields.RemoveAttributeOptions
	messages []hostedfields.MessageOptions
	cleared  []hostedfields.FieldName
	focused  []hostedfields.FieldName
	tornDown bool
}

func newFakeInstance() *fakeInstance {
	return &fakeInstance{
		handlers: map[hostedfields.EventKind][]func(hostedfields.Event){},
		state:    hostedfields.State{Fields: map[hostedfields.FieldName]hostedfields.FieldState{}},
		payload: &hostedfields.Payload{
			Nonce: "fake-nonce",
			Type:  PaymentMethodType,
			Details: hostedfields.CardDetails{
				CardType: "visa",
				LastFour: "1111",
			},
		},
	}
}

func (f *fakeInstance) On(kind hostedfields.EventKind, handler func(hostedfields.Event)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[kind] = append(f.handlers[kind], handler)
}

func (f *fakeInstance) GetState() hostedfields.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeInstance) setState(state hostedfields.State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = state
}

func (f *fakeInstance) Tokenize(_ context.Context, opts hostedfields.TokenizeOptions) (*hostedfields.Payload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokenized = append(f.tokenized, opts)
	if f.tokenizeErr != nil {
		return nil, f.tokenizeErr
	}
	payload := *f.payload
	return &payload, nil
}

func (f *fakeInstance) SetAttribute(opts hostedfields.AttributeOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attrs = append(f.attrs, opts)
	return nil
}

func (f *fakeInstance) RemoveAttribute(opts hostedfields.RemoveAttributeOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removals = append(f.removals, opts)
	return nil
}

func (f *fakeInstance) SetMessage(opts hostedfields.MessageOptions) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, opts)
}

func (f *fakeInstance) Clear(field hostedfields.FieldName) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared = append(f.cleared, field)
}

func (f *fakeInstance) Focus(field hostedfields.FieldName) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.focused = append(f.focused, field)
}

func (f *fakeInstance) Teardown(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tornDown = true
	return nil
}

// emit dispatches an event to subscribed handlers, like the provider would.
func (f *fakeInstance) emit(e hostedfields.Event) {
	f.mu.Lock()
	handlers := append([]func(hostedfields.Event){}, f.handlers[e.Kind]...)
	f.mu.Unlock()
	for _, h := range handlers {
		h(e)
	}
}

func (f *fakeInstance) lastAttr() (hostedfields.AttributeOptions, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.attrs) == 0 {
		return hostedfields.AttributeOptions{}, false
	}
	return f.attrs[len(f.attrs)-1], true
}

func (f *fakeInstance) attrsFor(field hostedfields.FieldName, attribute string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, a := range f.attrs {
		if a.Field == field && a.Attribute == attribute {
			out = append(out, a.Value)
		}
	}
	return out
}

// manualScheduler collects scheduled tasks so tests control time.
type manualScheduler struct {
	mu    sync.Mutex
	tasks []*manualTask
}

type manualTask struct {
	delay     time.Duration
	fn        func()
	cancelled bool
}

func (s *manualScheduler) schedule(d time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := &manualTask{delay: d, fn: fn}
	s.tasks = append(s.tasks, task)
	return func() {
		s.mu.Lock()
		task.cancelled = true
		s.mu.Unlock()
	}
}

// fire runs every pending task that has not been cancelled.
func (s *manualScheduler) fire() {
	s.mu.Lock()
	pending := s.tasks
	s.tasks = nil
	s.mu.Unlock()
	for _, task := range pending {
		s.mu.Lock()
		cancelled := task.cancelled
		s.mu.Unlock()
		if !cancelled {
			task.fn()
		}
	}
}

func (s *manualScheduler) pendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, task := range s.tasks {
		if !task.cancelled {
			n++
		}
	}
	return n
}

type viewFixture struct {
	view     *View
	model    *recordingModel
	instance *fakeInstance
	doc      *dom.Document
	sched    *manualScheduler
}

func defaultGatewayConfig() gateway.Configuration {
	return gateway.Configuration{
		Challenges:         []string{gateway.ChallengeCVV, gateway.ChallengePostalCode},
		SupportedCardTypes: []string{"visa", "master-card", "american-express"},
	}
}

func newTestView(t *testing.T, mutate ...func(*Options)) *viewFixture {
	t.Helper()

	fixture := &viewFixture{
		model:    &recordingModel{},
		instance: newFakeInstance(),
		doc:      dom.NewDocument(),
		sched:    &manualScheduler{},
	}

	opts := Options{
		Model:    fixture.model,
		Document: fixture.doc,
		Gateway:  defaultGatewayConfig(),
		Create: func(context.Context, hostedfields.CreateOptions) (hostedfields.Instance, error) {
			return fixture.instance, nil
		},
		Authorization: "fake-client-token",
		Schedule:      fixture.sched.schedule,
	}
	for _, m := range mutate {
		m(&opts)
	}

	fixture.view = New(opts)
	require.NoError(t, fixture.view.Initialize(context.Background()))
	return fixture
}

func withMerchant(cfg *config.CardConfig) func(*Options) {
	return func(o *Options) { o.Merchant = cfg }
}

func withGateway(cfg gateway.Configuration) func(*Options) {
	return func(o *Options) { o.Gateway = cfg }
}

// validState is a snapshot where every hosted field is filled and valid and
// the number resolves to a single supported brand.
func validState() hostedfields.State {
	return hostedfields.State{
		Cards: []hostedfields.Card{{Type: "visa"}},
		Fields: map[hostedfields.FieldName]hostedfields.FieldState{
			hostedfields.FieldNumber:         {IsValid: true, IsPotentiallyValid: true},
			hostedfields.FieldExpirationDate: {IsValid: true, IsPotentiallyValid: true},
			hostedfields.FieldCVV:            {IsValid: true, IsPotentiallyValid: true},
			hostedfields.FieldPostalCode:     {IsValid: true, IsPotentiallyValid: true},
		},
	}
}

func boolPtr(b bool) *bool { return &b }
