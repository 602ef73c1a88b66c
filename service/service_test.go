package service

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go.convislabs.com/registration/config"
	"go.convislabs.com/registration/core"
	"go.convislabs.com/registration/db"
)

const testMongoEnv = "REGISTRATION_TEST_MONGO_URI"

type staticConfig struct {
	cfg *config.Config
}

func (s *staticConfig) Init() error            { return nil }
func (s *staticConfig) Config() *config.Config { return s.cfg }
func (s *staticConfig) Save() error            { return nil }

type sentMail struct {
	Template string
	To       string
	BodyVars core.MailerTemplateData
}

// fakeMailer records sends instead of talking to an SMTP server. A send
// error can be injected to exercise delivery-failure paths.
type fakeMailer struct {
	mu      sync.Mutex
	sent    []sentMail
	sendErr error
}

func (f *fakeMailer) ID() string {
	return core.MAILER_SERVICE
}

func (f *fakeMailer) TemplateSend(template string, subjectVars core.MailerTemplateData, bodyVars core.MailerTemplateData, to string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.sendErr != nil {
		return f.sendErr
	}

	f.sent = append(f.sent, sentMail{Template: template, To: to, BodyVars: bodyVars})
	return nil
}

func (f *fakeMailer) FailSends(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sendErr = err
}

func (f *fakeMailer) TemplateSendRetry(ctx context.Context, template string, subjectVars core.MailerTemplateData, bodyVars core.MailerTemplateData, to string, attempts int, delay time.Duration) error {
	return f.TemplateSend(template, subjectVars, bodyVars, to)
}

func (f *fakeMailer) TemplateRegister(name string, template core.MailerTemplate) error {
	return nil
}

func (f *fakeMailer) Sent() []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMail(nil), f.sent...)
}

type testHarness struct {
	ctx       core.Context
	user      *UserServiceDefault
	auth      *AuthServiceDefault
	assistant *AssistantServiceDefault
	mailer    *fakeMailer
}

// newTestHarness wires the services against a throwaway database, the
// way the application boot path does. Tests are skipped unless a
// MongoDB instance is provided through the environment.
func newTestHarness(t *testing.T) *testHarness {
	t.Helper()

	uri := os.Getenv(testMongoEnv)
	if uri == "" {
		t.Skip("set " + testMongoEnv + " to run database-backed tests")
	}

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	require.NoError(t, err)

	mdb := client.Database("registration_test_" + primitive.NewObjectID().Hex())

	t.Cleanup(func() {
		_ = mdb.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	cm := &staticConfig{cfg: &config.Config{}}
	cm.cfg.Core.Domain = "localhost"
	cm.cfg.Core.PortalName = "Convis Labs"
	cm.cfg.Core.JWT.Secret = "test-secret"

	mailerSvc := &fakeMailer{}

	userSvc, userOpts, err := NewUserService()
	require.NoError(t, err)

	authSvc, authOpts, err := NewAuthService()
	require.NoError(t, err)

	assistantSvc, assistantOpts, err := NewAssistantService()
	require.NoError(t, err)

	ctxOpts := []core.ContextBuilderOption{
		core.ContextWithDB(mdb),
		core.ContextWithService(core.MAILER_SERVICE, mailerSvc),
		core.ContextWithService(core.USER_SERVICE, userSvc),
		core.ContextWithService(core.AUTH_SERVICE, authSvc),
		core.ContextWithService(core.ASSISTANT_SERVICE, assistantSvc),
		core.ContextWithEvents(core.GetEvents()...),
	}
	ctxOpts = append(ctxOpts, userOpts...)
	ctxOpts = append(ctxOpts, authOpts...)
	ctxOpts = append(ctxOpts, assistantOpts...)

	ctx, err := core.NewContext(cm, core.NewLogger(nil), ctxOpts...)
	require.NoError(t, err)

	for _, startup := range ctx.StartupFuncs() {
		require.NoError(t, startup(ctx))
	}

	require.NoError(t, db.EnsureIndexes(ctx, mdb))

	return &testHarness{
		ctx:       ctx,
		user:      userSvc,
		auth:      authSvc,
		assistant: assistantSvc,
		mailer:    mailerSvc,
	}
}
