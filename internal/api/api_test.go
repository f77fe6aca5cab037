package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tokenized/voting/internal/platform/state"
	"github.com/tokenized/voting/internal/platform/tests"
	"github.com/tokenized/voting/internal/voting"
	"github.com/tokenized/voting/pkg/address"

	"github.com/btcsuite/btcd/btcec"
	"github.com/google/go-cmp/cmp"
)

var testProgramID = address.MustDecode("6z68wfurCMYkZG51s1Et9BJEd9nJGUusjHXNt4dGbNNF")

func newTestServer(t *testing.T) (*httptest.Server, address.Address) {
	ctx := context.Background()
	test := &tests.Test{}
	if err := test.Setup(ctx); err != nil {
		t.Fatalf("Failed to setup test : %s", err)
	}
	t.Cleanup(func() { test.Close(ctx) })

	test.Runtime.Register(testProgramID, voting.New(testProgramID, voting.Options{}))

	app := NewApp(voting.NewClient(testProgramID, test.Runtime), test.DB)
	server := httptest.NewUnstartedServer(app.Router())
	server.Config.BaseContext = func(net.Listener) context.Context {
		return test.Context(ctx, t.Name())
	}
	server.Start()
	t.Cleanup(server.Close)

	_, pub := btcec.PrivKeyFromBytes(btcec.S256(), bytes.Repeat([]byte{1}, 32))
	return server, address.SignerAddress(pub)
}

func do(t *testing.T, server *httptest.Server, method, path string, signer address.Address,
	body interface{}, result interface{}) int {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body : %s", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, server.URL+path, reader)
	if err != nil {
		t.Fatalf("Failed to create request : %s", err)
	}
	if !signer.IsZero() {
		req.Header.Set(SignerHeader, signer.String())
	}

	resp, err := server.Client().Do(req)
	if err != nil {
		t.Fatalf("Failed request : %s", err)
	}
	defer resp.Body.Close()

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			t.Fatalf("Failed to decode response : %s", err)
		}
	}
	return resp.StatusCode
}

func TestPollLifecycle(t *testing.T) {
	server, signer := newTestServer(t)

	var poll state.Poll
	status := do(t, server, http.MethodPost, "/polls", signer, &CreatePollRequest{
		PollID:      1,
		Description: "What is your favorite type of peanut butter?",
		PollEnd:     1821246480,
	}, &poll)
	if status != http.StatusCreated {
		t.Fatalf("Wrong create poll status : %d", status)
	}

	for _, name := range []string{"Smooth", "Crunchy"} {
		var candidate state.Candidate
		status := do(t, server, http.MethodPost, "/polls/1/candidates", signer,
			&CreateCandidateRequest{CandidateName: name}, &candidate)
		if status != http.StatusCreated {
			t.Fatalf("Wrong create candidate status : %d", status)
		}
	}

	var candidate state.Candidate
	status = do(t, server, http.MethodPost, "/polls/1/candidates/Smooth/votes", signer, nil,
		&candidate)
	if status != http.StatusOK {
		t.Fatalf("Wrong vote status : %d", status)
	}
	want := state.Candidate{CandidateName: "Smooth", PollID: 1, CandidateVotes: 1}
	if diff := cmp.Diff(want, candidate); diff != "" {
		t.Errorf("Wrong candidate (-want +got):\n%s", diff)
	}

	status = do(t, server, http.MethodGet, "/polls/1", address.Zero, nil, &poll)
	if status != http.StatusOK {
		t.Fatalf("Wrong get poll status : %d", status)
	}
	if poll.CandidateAmount != 2 {
		t.Errorf("Wrong candidate amount : %d", poll.CandidateAmount)
	}

	a, _, err := voting.CandidateAddress(testProgramID, 1, "Crunchy")
	if err != nil {
		t.Fatalf("Failed to derive candidate : %s", err)
	}
	var account struct {
		Type  string          `json:"type"`
		Owner address.Address `json:"owner"`
		Value state.Candidate `json:"value"`
	}
	status = do(t, server, http.MethodGet, "/accounts/"+a.String(), address.Zero, nil, &account)
	if status != http.StatusOK {
		t.Fatalf("Wrong get account status : %d", status)
	}
	if account.Type != voting.AccountTypeCandidate || account.Value.CandidateName != "Crunchy" {
		t.Errorf("Wrong account : %+v", account)
	}
	if !account.Owner.Equal(testProgramID) {
		t.Errorf("Wrong owner : %s", account.Owner)
	}
}

func TestErrors(t *testing.T) {
	server, signer := newTestServer(t)

	if status := do(t, server, http.MethodPost, "/polls", signer,
		&CreatePollRequest{PollID: 2}, nil); status != http.StatusCreated {
		t.Fatalf("Wrong create poll status : %d", status)
	}

	tests := []struct {
		name   string
		method string
		path   string
		signer address.Address
		body   interface{}
		status int
		code   uint32
	}{
		{
			name:   "duplicate poll",
			method: http.MethodPost,
			path:   "/polls",
			signer: signer,
			body:   &CreatePollRequest{PollID: 2},
			status: http.StatusConflict,
			code:   voting.ErrAlreadyInitialized.Code,
		},
		{
			name:   "long description",
			method: http.MethodPost,
			path:   "/polls",
			signer: signer,
			body:   &CreatePollRequest{PollID: 3, Description: strings.Repeat("d", 281)},
			status: http.StatusBadRequest,
			code:   voting.ErrInvalidInput.Code,
		},
		{
			name:   "missing signer",
			method: http.MethodPost,
			path:   "/polls",
			body:   &CreatePollRequest{PollID: 4},
			status: http.StatusUnauthorized,
		},
		{
			name:   "vote missing candidate",
			method: http.MethodPost,
			path:   "/polls/2/candidates/Nobody/votes",
			signer: signer,
			status: http.StatusNotFound,
			code:   voting.ErrNotFound.Code,
		},
		{
			name:   "missing poll",
			method: http.MethodGet,
			path:   "/polls/99",
			status: http.StatusNotFound,
			code:   voting.ErrNotFound.Code,
		},
		{
			name:   "bad poll id",
			method: http.MethodGet,
			path:   "/polls/abc",
			status: http.StatusBadRequest,
		},
		{
			name:   "bad address",
			method: http.MethodGet,
			path:   "/accounts/0OIl",
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp ErrorResponse
			status := do(t, server, tt.method, tt.path, tt.signer, tt.body, &resp)
			if status != tt.status {
				t.Errorf("Wrong status : got %d, want %d (%s)", status, tt.status, resp.Error)
			}
			if resp.Code != tt.code {
				t.Errorf("Wrong code : got %d, want %d", resp.Code, tt.code)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	server, _ := newTestServer(t)

	var resp map[string]string
	if status := do(t, server, http.MethodGet, "/health", address.Zero, nil,
		&resp); status != http.StatusOK {
		t.Fatalf("Wrong status : %d", status)
	}
	if resp["status"] != "ok" {
		t.Errorf("Wrong health : %v", resp)
	}
}
