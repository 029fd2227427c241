package services

import (
	"context"
	"io"
	"sort"

	"github.com/torneos/esports-api/models"
	"github.com/torneos/esports-api/repositories"
	"github.com/torneos/esports-api/storage"
)

// In-memory repository fakes. They mirror the constraint behavior of the
// postgres implementations closely enough for service-level tests.

type fakeUserRepo struct {
	nextID int
	users  map[int]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return repositories.ErrUserUsernameConflict
		}
	}
	user.ID = r.nextID
	r.nextID++
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	user, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.users[id]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) ListByRoles(ctx context.Context, roles ...models.UserRole) ([]models.User, error) {
	var out []models.User
	for _, user := range r.users {
		for _, role := range roles {
			if user.Role == role {
				out = append(out, *user)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeGameRepo struct {
	nextID int
	games  map[int]*models.Game
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{nextID: 1, games: make(map[int]*models.Game)}
}

func (r *fakeGameRepo) Create(ctx context.Context, game *models.Game) error {
	for _, existing := range r.games {
		if existing.Name == game.Name {
			return repositories.ErrGameNameConflict
		}
	}
	game.ID = r.nextID
	r.nextID++
	clone := *game
	r.games[game.ID] = &clone
	return nil
}

func (r *fakeGameRepo) GetByID(ctx context.Context, id int) (*models.Game, error) {
	game, ok := r.games[id]
	if !ok {
		return nil, repositories.ErrGameNotFound
	}
	clone := *game
	return &clone, nil
}

func (r *fakeGameRepo) GetAll(ctx context.Context, onlyActive bool) ([]models.Game, error) {
	var out []models.Game
	for _, game := range r.games {
		if onlyActive && !game.Active {
			continue
		}
		out = append(out, *game)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeGameRepo) Update(ctx context.Context, game *models.Game) error {
	if _, ok := r.games[game.ID]; !ok {
		return repositories.ErrGameNotFound
	}
	for id, existing := range r.games {
		if id != game.ID && existing.Name == game.Name {
			return repositories.ErrGameNameConflict
		}
	}
	clone := *game
	r.games[game.ID] = &clone
	return nil
}

func (r *fakeGameRepo) SetActive(ctx context.Context, id int, active bool) error {
	game, ok := r.games[id]
	if !ok {
		return repositories.ErrGameNotFound
	}
	game.Active = active
	return nil
}

func (r *fakeGameRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.games[id]; !ok {
		return repositories.ErrGameNotFound
	}
	delete(r.games, id)
	return nil
}

func (r *fakeGameRepo) ExistsByName(ctx context.Context, name string, excludeID int) (bool, error) {
	for id, game := range r.games {
		if id != excludeID && game.Name == name {
			return true, nil
		}
	}
	return false, nil
}

type fakeAdminGameRepo struct {
	links map[[2]int]bool
	games map[int]models.Game
}

func newFakeAdminGameRepo() *fakeAdminGameRepo {
	return &fakeAdminGameRepo{links: make(map[[2]int]bool), games: make(map[int]models.Game)}
}

func (r *fakeAdminGameRepo) Link(ctx context.Context, adminID, gameID int) error {
	key := [2]int{adminID, gameID}
	if r.links[key] {
		return repositories.ErrAdminGameLinkConflict
	}
	r.links[key] = true
	return nil
}

func (r *fakeAdminGameRepo) Unlink(ctx context.Context, adminID, gameID int) error {
	key := [2]int{adminID, gameID}
	if !r.links[key] {
		return repositories.ErrAdminGameLinkNotFound
	}
	delete(r.links, key)
	return nil
}

func (r *fakeAdminGameRepo) Exists(ctx context.Context, adminID, gameID int) (bool, error) {
	return r.links[[2]int{adminID, gameID}], nil
}

func (r *fakeAdminGameRepo) ListGamesByAdmin(ctx context.Context, adminID int) ([]models.Game, error) {
	var out []models.Game
	for key := range r.links {
		if key[0] == adminID {
			out = append(out, r.games[key[1]])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeTeamRepo struct {
	nextID int
	teams  map[int]*models.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{nextID: 1, teams: make(map[int]*models.Team)}
}

func (r *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error {
	if team.Status == models.RegistrationConfirmed {
		count, _ := r.CountConfirmed(ctx, team.CaptainID, team.GameID, 0)
		if count > 0 {
			return repositories.ErrTeamConfirmedConflict
		}
	}
	team.ID = r.nextID
	r.nextID++
	clone := *team
	r.teams[team.ID] = &clone
	return nil
}

func (r *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	clone := *team
	return &clone, nil
}

func (r *fakeTeamRepo) ListByGame(ctx context.Context, gameID int) ([]models.Team, error) {
	var out []models.Team
	for _, team := range r.teams {
		if team.GameID == gameID {
			out = append(out, *team)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTeamRepo) Update(ctx context.Context, team *models.Team) error {
	if _, ok := r.teams[team.ID]; !ok {
		return repositories.ErrTeamNotFound
	}
	clone := *team
	r.teams[team.ID] = &clone
	return nil
}

func (r *fakeTeamRepo) UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) error {
	team, ok := r.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	if status == models.RegistrationConfirmed {
		count, _ := r.CountConfirmed(ctx, team.CaptainID, team.GameID, id)
		if count > 0 {
			return repositories.ErrTeamConfirmedConflict
		}
	}
	team.Status = status
	return nil
}

func (r *fakeTeamRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.teams, id)
	return nil
}

func (r *fakeTeamRepo) CountConfirmed(ctx context.Context, captainID, gameID, excludeID int) (int, error) {
	count := 0
	for id, team := range r.teams {
		if id == excludeID {
			continue
		}
		if team.CaptainID == captainID && team.GameID == gameID && team.Status == models.RegistrationConfirmed {
			count++
		}
	}
	return count, nil
}

type fakeInscriptionRepo struct {
	nextID       int
	inscriptions map[int]*models.IndividualInscription
}

func newFakeInscriptionRepo() *fakeInscriptionRepo {
	return &fakeInscriptionRepo{nextID: 1, inscriptions: make(map[int]*models.IndividualInscription)}
}

func (r *fakeInscriptionRepo) Create(ctx context.Context, inscription *models.IndividualInscription) error {
	if inscription.Status == models.RegistrationConfirmed {
		count, _ := r.CountConfirmed(ctx, inscription.UserID, inscription.GameID, 0)
		if count > 0 {
			return repositories.ErrInscriptionConfirmedConflict
		}
	}
	inscription.ID = r.nextID
	r.nextID++
	clone := *inscription
	r.inscriptions[inscription.ID] = &clone
	return nil
}

func (r *fakeInscriptionRepo) GetByID(ctx context.Context, id int) (*models.IndividualInscription, error) {
	inscription, ok := r.inscriptions[id]
	if !ok {
		return nil, repositories.ErrInscriptionNotFound
	}
	clone := *inscription
	return &clone, nil
}

func (r *fakeInscriptionRepo) ListByGame(ctx context.Context, gameID int) ([]models.IndividualInscription, error) {
	var out []models.IndividualInscription
	for _, inscription := range r.inscriptions {
		if inscription.GameID == gameID {
			out = append(out, *inscription)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeInscriptionRepo) UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) error {
	inscription, ok := r.inscriptions[id]
	if !ok {
		return repositories.ErrInscriptionNotFound
	}
	if status == models.RegistrationConfirmed {
		count, _ := r.CountConfirmed(ctx, inscription.UserID, inscription.GameID, id)
		if count > 0 {
			return repositories.ErrInscriptionConfirmedConflict
		}
	}
	inscription.Status = status
	return nil
}

func (r *fakeInscriptionRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.inscriptions[id]; !ok {
		return repositories.ErrInscriptionNotFound
	}
	delete(r.inscriptions, id)
	return nil
}

func (r *fakeInscriptionRepo) CountConfirmed(ctx context.Context, userID, gameID, excludeID int) (int, error) {
	count := 0
	for id, inscription := range r.inscriptions {
		if id == excludeID {
			continue
		}
		if inscription.UserID == userID && inscription.GameID == gameID && inscription.Status == models.RegistrationConfirmed {
			count++
		}
	}
	return count, nil
}

type fakeRosterRepo struct {
	nextID  int
	entries map[int]*models.TeamPlayer
}

func newFakeRosterRepo() *fakeRosterRepo {
	return &fakeRosterRepo{nextID: 1, entries: make(map[int]*models.TeamPlayer)}
}

func (r *fakeRosterRepo) Add(ctx context.Context, entry *models.TeamPlayer) error {
	for _, existing := range r.entries {
		if existing.TeamID == entry.TeamID && existing.UserID == entry.UserID {
			return repositories.ErrRosterConflict
		}
	}
	entry.ID = r.nextID
	r.nextID++
	clone := *entry
	r.entries[entry.ID] = &clone
	return nil
}

func (r *fakeRosterRepo) Remove(ctx context.Context, teamID, userID int) error {
	for id, entry := range r.entries {
		if entry.TeamID == teamID && entry.UserID == userID {
			delete(r.entries, id)
			return nil
		}
	}
	return repositories.ErrRosterEntryNotFound
}

func (r *fakeRosterRepo) ListByTeam(ctx context.Context, teamID int) ([]models.User, error) {
	return nil, nil
}

type fakeTournamentRepo struct {
	nextID      int
	tournaments map[int]*models.Tournament
}

func newFakeTournamentRepo() *fakeTournamentRepo {
	return &fakeTournamentRepo{nextID: 1, tournaments: make(map[int]*models.Tournament)}
}

func (r *fakeTournamentRepo) Create(ctx context.Context, tournament *models.Tournament) error {
	tournament.ID = r.nextID
	r.nextID++
	clone := *tournament
	r.tournaments[tournament.ID] = &clone
	return nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	clone := *tournament
	return &clone, nil
}

func (r *fakeTournamentRepo) GetAll(ctx context.Context) ([]models.Tournament, error) {
	var out []models.Tournament
	for _, tournament := range r.tournaments {
		out = append(out, *tournament)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTournamentRepo) ListByGame(ctx context.Context, gameID int) ([]models.Tournament, error) {
	var out []models.Tournament
	for _, tournament := range r.tournaments {
		if tournament.GameID == gameID {
			out = append(out, *tournament)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTournamentRepo) Update(ctx context.Context, tournament *models.Tournament) error {
	if _, ok := r.tournaments[tournament.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	clone := *tournament
	r.tournaments[tournament.ID] = &clone
	return nil
}

func (r *fakeTournamentRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

type fakeMatchRepo struct {
	nextID  int
	matches map[int]*models.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{nextID: 1, matches: make(map[int]*models.Match)}
}

func (r *fakeMatchRepo) Create(ctx context.Context, match *models.Match) error {
	match.ID = r.nextID
	r.nextID++
	clone := *match
	r.matches[match.ID] = &clone
	return nil
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	clone := *match
	return &clone, nil
}

func (r *fakeMatchRepo) ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error) {
	var out []models.Match
	for _, match := range r.matches {
		if match.TournamentID == tournamentID {
			out = append(out, *match)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeMatchRepo) Update(ctx context.Context, match *models.Match) error {
	if _, ok := r.matches[match.ID]; !ok {
		return repositories.ErrMatchNotFound
	}
	clone := *match
	r.matches[match.ID] = &clone
	return nil
}

func (r *fakeMatchRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.matches[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(r.matches, id)
	return nil
}

type fakeParticipantRepo struct {
	nextID       int
	participants map[int]*models.MatchParticipant
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{nextID: 1, participants: make(map[int]*models.MatchParticipant)}
}

func (r *fakeParticipantRepo) Create(ctx context.Context, participant *models.MatchParticipant) error {
	if (participant.TeamID == nil) == (participant.UserID == nil) {
		return repositories.ErrParticipantInvalid
	}
	for _, existing := range r.participants {
		if existing.MatchID == participant.MatchID && existing.Ref() == participant.Ref() {
			return repositories.ErrParticipantConflict
		}
	}
	participant.ID = r.nextID
	r.nextID++
	clone := *participant
	r.participants[participant.ID] = &clone
	return nil
}

func (r *fakeParticipantRepo) GetByID(ctx context.Context, id int) (*models.MatchParticipant, error) {
	participant, ok := r.participants[id]
	if !ok {
		return nil, repositories.ErrParticipantNotFound
	}
	clone := *participant
	return &clone, nil
}

func (r *fakeParticipantRepo) ListByMatch(ctx context.Context, matchID int) ([]models.MatchParticipant, error) {
	var out []models.MatchParticipant
	for _, participant := range r.participants {
		if participant.MatchID == matchID {
			out = append(out, *participant)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeParticipantRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.participants[id]; !ok {
		return repositories.ErrParticipantNotFound
	}
	delete(r.participants, id)
	return nil
}

// fakeUploader records uploads and never touches the network.
type fakeUploader struct {
	uploaded []string
	deleted  []string
}

func (u *fakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	u.uploaded = append(u.uploaded, key)
	return &storage.UploadResult{Key: key, Location: "https://cdn.test/" + key}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error {
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}
