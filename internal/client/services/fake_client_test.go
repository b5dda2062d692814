package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/TusharG27x/codebuddy/internal/client/client"
	"github.com/TusharG27x/codebuddy/internal/client/models"
)

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	mu sync.Mutex

	LoginRet models.Session
	LoginErr error
	// loginGates, when set, block Login for an email until the session to
	// return is sent on its channel.
	loginGates map[string]chan models.Session

	RegisterRet models.Session
	RegisterErr error

	LogoutErr error

	ProfileRet models.Profile
	ProfileErr error

	UpdateRet models.Profile
	UpdateErr error

	StatsRet json.RawMessage
	StatsErr error

	HintRet string
	HintErr error

	LastLoginEmail    string
	LastLoginPassword []byte
	LastRegisterName  string
	LastUpdateName    string
	LastUpdateBio     string
	LastHintProblem   string
	LastHintCode      string

	LogoutCalls int
	ClearCalls  int
	UseCalls    int
	HintCalls   int
	CloseCalls  int
}

func (f *fakeClient) Login(ctx context.Context, email string, password []byte) (models.Session, client.Credentials, error) {
	f.mu.Lock()
	f.LastLoginEmail = email
	f.LastLoginPassword = append([]byte(nil), password...)
	gate := f.loginGates[email]
	ret, err := f.LoginRet, f.LoginErr
	f.mu.Unlock()

	if gate != nil {
		return <-gate, client.Credentials{}, nil
	}
	return ret, client.Credentials{}, err
}

func (f *fakeClient) Register(ctx context.Context, name, email string, password []byte) (models.Session, client.Credentials, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastRegisterName = name
	return f.RegisterRet, client.Credentials{}, f.RegisterErr
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LogoutCalls++
	return f.LogoutErr
}

func (f *fakeClient) Profile(ctx context.Context) (models.Profile, error) {
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, name, bio string) (models.Profile, error) {
	f.LastUpdateName = name
	f.LastUpdateBio = bio
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) DashboardStats(ctx context.Context) (json.RawMessage, error) {
	return f.StatsRet, f.StatsErr
}

func (f *fakeClient) Hint(ctx context.Context, problem, code string) (string, error) {
	f.HintCalls++
	f.LastHintProblem = problem
	f.LastHintCode = code
	return f.HintRet, f.HintErr
}

func (f *fakeClient) UseCredentials(client.Credentials) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UseCalls++
}

func (f *fakeClient) ClearCredentials() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ClearCalls++
}

func (f *fakeClient) Close() error {
	f.CloseCalls++
	return nil
}
