package server

import (
	"encoding/hex"
	"fmt"
	"net/http"

	bullposter_protocol "bullposter-cli/solana"
	"bullposter-cli/storage"

	"github.com/gagliardetto/solana-go"
	"github.com/gorilla/mux"
	"github.com/mr-tron/base58"
)

type stateView struct {
	State         *bullposter_protocol.ProgramStateCard `json:"state"`
	LastSeenRaids bullposter_protocol.LastSeenRaids     `json:"lastSeenRaids"`
}

type indexesView struct {
	RaidPrograms []string `json:"raidPrograms"`
	Raids        []string `json:"raids"`
	Competitions []string `json:"competitions"`
}

type programResult struct {
	Address solana.PublicKey                     `json:"address"`
	Program *bullposter_protocol.RaidProgramCard `json:"program,omitempty"`
	Error   string                               `json:"error,omitempty"`
}

type seedView struct {
	Value      string           `json:"value"`
	SeedHex    string           `json:"seedHex"`
	SeedBase58 string           `json:"seedBase58"`
	PDA        solana.PublicKey `json:"pda"`
	Bump       uint8            `json:"bump"`
}

// fail writes err as an API error and logs it with the request id.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error(r.Context(), "request error", "request_id", RequestID(r.Context()), "status", status, "error", err)
	}
	failure(w, status, err.Error())
}

func pathKey(r *http.Request, name string) (solana.PublicKey, error) {
	raw := mux.Vars(r)[name]
	key, err := solana.PublicKeyFromBase58(raw)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: %s %q: %v", bullposter_protocol.ErrMalformedSeedInput, name, raw, err)
	}
	return key, nil
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	state, err := s.client.FetchProgramState(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	success(w, stateView{State: state, LastSeenRaids: state.ParsedLastSeenRaids()})
}

func (s *Server) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	state, err := s.client.FetchLeaderboard(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	leaderboard, err := state.Parse()
	if err != nil {
		s.fail(w, r, fmt.Errorf("parse leaderboard: %w", err))
		return
	}
	success(w, leaderboard)
}

func (s *Server) handleGetIndexes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	programs, err := s.client.FetchRaidProgramsState(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	raids, err := s.client.FetchRaidsState(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	competitions, err := s.client.FetchCompetitionsState(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	success(w, indexesView{
		RaidPrograms: programs.Keys(),
		Raids:        raids.Keys(),
		Competitions: competitions.Keys(),
	})
}

func (s *Server) handleGetUserCard(w http.ResponseWriter, r *http.Request) {
	user, err := pathKey(r, "pubkey")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	card, err := s.client.FetchUserCard(r.Context(), user)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	success(w, card)
}

func (s *Server) handleGetUserPrograms(w http.ResponseWriter, r *http.Request) {
	user, err := pathKey(r, "pubkey")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	results, err := s.client.FetchEnrolledPrograms(r.Context(), user)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	views := make([]programResult, 0, len(results))
	for _, res := range results {
		v := programResult{Address: res.Address, Program: res.Account}
		if res.Err != nil {
			v.Error = res.Err.Error()
		}
		views = append(views, v)
	}
	success(w, views)
}

func (s *Server) handleGetProfiles(w http.ResponseWriter, r *http.Request) {
	if s.profiles == nil {
		success(w, []storage.Profile{})
		return
	}
	profiles, err := s.profiles.GetAllProfiles()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	success(w, profiles)
}

func (s *Server) handleGetProfileCard(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if s.profiles == nil {
		s.fail(w, r, fmt.Errorf("%w: %s", storage.ErrProfileNotFound, name))
		return
	}
	profile, err := s.profiles.GetProfile(name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	card, err := s.client.FetchUserCard(r.Context(), profile.Wallet)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	success(w, card)
}

func (s *Server) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	address, err := pathKey(r, "address")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	program, err := s.client.FetchRaidProgramCard(r.Context(), address)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	success(w, program)
}

func (s *Server) handleGetRaid(w http.ResponseWriter, r *http.Request) {
	address, err := pathKey(r, "address")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	raid, err := s.client.FetchRaidCard(r.Context(), address)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	success(w, raid)
}

func (s *Server) handleGetCompetition(w http.ResponseWriter, r *http.Request) {
	address, err := pathKey(r, "address")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	competition, err := s.client.FetchCompetitionCard(r.Context(), address)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	success(w, competition)
}

func (s *Server) handleGetSeed(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("value")
	if value == "" {
		failure(w, http.StatusBadRequest, "missing 'value' query parameter")
		return
	}
	seed := bullposter_protocol.DeriveSeed(value)
	pda, bump, err := bullposter_protocol.FindPDA(seed, s.client.ProgramID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	success(w, seedView{
		Value:      value,
		SeedHex:    hex.EncodeToString(seed[:]),
		SeedBase58: base58.Encode(seed[:]),
		PDA:        pda,
		Bump:       bump,
	})
}
