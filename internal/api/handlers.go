package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/tokenized/voting/internal/voting"
	"github.com/tokenized/voting/pkg/address"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"go.opencensus.io/trace"
)

var (
	ErrMissingSigner    = errors.New("Missing signer")
	ErrInvalidParameter = errors.New("Invalid parameter")
)

// CreatePollRequest is the body of POST /polls.
type CreatePollRequest struct {
	PollID      uint64 `json:"poll_id"`
	Description string `json:"description"`
	PollStart   uint64 `json:"poll_start"`
	PollEnd     uint64 `json:"poll_end"`
}

// CreateCandidateRequest is the body of POST /polls/{pollID}/candidates.
type CreateCandidateRequest struct {
	CandidateName string `json:"candidate_name"`
}

// AccountResponse is a decoded program account.
type AccountResponse struct {
	Address address.Address `json:"address"`
	Owner   address.Address `json:"owner"`
	Type    string          `json:"type"`
	Value   interface{}     `json:"value"`
}

// HealthHandler checks the ledger storage.
func (a *App) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.Health.StatusCheck(r.Context()); err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// CreatePollHandler submits initialize_poll.
func (a *App) CreatePollHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := trace.StartSpan(r.Context(), "api.CreatePoll")
	defer span.End()

	signer, err := signerFromRequest(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	var req CreatePollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, r, errors.Wrap(ErrInvalidParameter, err.Error()))
		return
	}

	if err := a.Client.InitializePoll(ctx, signer, voting.InitializePollArgs{
		PollID:      req.PollID,
		Description: req.Description,
		PollStart:   req.PollStart,
		PollEnd:     req.PollEnd,
	}); err != nil {
		RespondError(w, r, err)
		return
	}

	poll, err := a.Client.Poll(ctx, req.PollID)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, r, http.StatusCreated, poll)
}

// GetPollHandler returns the poll for the id in the path.
func (a *App) GetPollHandler(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDFromRequest(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	poll, err := a.Client.Poll(r.Context(), pollID)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, r, http.StatusOK, poll)
}

// CreateCandidateHandler submits initialize_candidate.
func (a *App) CreateCandidateHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := trace.StartSpan(r.Context(), "api.CreateCandidate")
	defer span.End()

	signer, err := signerFromRequest(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	pollID, err := pollIDFromRequest(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	var req CreateCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, r, errors.Wrap(ErrInvalidParameter, err.Error()))
		return
	}

	args := voting.CandidateArgs{CandidateName: req.CandidateName, PollID: pollID}
	if err := a.Client.InitializeCandidate(ctx, signer, args); err != nil {
		RespondError(w, r, err)
		return
	}

	candidate, err := a.Client.Candidate(ctx, pollID, req.CandidateName)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, r, http.StatusCreated, candidate)
}

// GetCandidateHandler returns a candidate and its tally.
func (a *App) GetCandidateHandler(w http.ResponseWriter, r *http.Request) {
	pollID, err := pollIDFromRequest(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	candidate, err := a.Client.Candidate(r.Context(), pollID, chi.URLParam(r, "name"))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, r, http.StatusOK, candidate)
}

// VoteHandler submits vote and returns the updated candidate.
func (a *App) VoteHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := trace.StartSpan(r.Context(), "api.Vote")
	defer span.End()

	signer, err := signerFromRequest(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	pollID, err := pollIDFromRequest(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	args := voting.CandidateArgs{CandidateName: chi.URLParam(r, "name"), PollID: pollID}
	if err := a.Client.Vote(ctx, signer, args); err != nil {
		RespondError(w, r, err)
		return
	}

	candidate, err := a.Client.Candidate(ctx, pollID, args.CandidateName)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	Respond(w, r, http.StatusOK, candidate)
}

// GetAccountHandler decodes any account owned by the program.
func (a *App) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	ad, err := address.Decode(chi.URLParam(r, "address"))
	if err != nil {
		RespondError(w, r, errors.Wrap(ErrInvalidParameter, err.Error()))
		return
	}

	account, err := a.Client.Ledger.Get(r.Context(), ad)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	typ, value, err := voting.DecodeAccount(a.Client.ProgramID, account)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	Respond(w, r, http.StatusOK, &AccountResponse{
		Address: account.Address,
		Owner:   account.Owner,
		Type:    typ,
		Value:   value,
	})
}

func signerFromRequest(r *http.Request) (address.Address, error) {
	s := r.Header.Get(SignerHeader)
	if len(s) == 0 {
		return address.Zero, ErrMissingSigner
	}

	result, err := address.Decode(s)
	if err != nil {
		return address.Zero, errors.Wrap(ErrInvalidParameter, "signer : "+err.Error())
	}
	return result, nil
}

func pollIDFromRequest(r *http.Request) (uint64, error) {
	pollID, err := strconv.ParseUint(chi.URLParam(r, "pollID"), 10, 64)
	if err != nil {
		return 0, errors.Wrap(ErrInvalidParameter, "poll id : "+err.Error())
	}
	return pollID, nil
}
