package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/marsconnect/mars-quest-backend/database"
	"github.com/marsconnect/mars-quest-backend/models"
)

// envelope mirrors Envelope with raw data so each test can decode into its
// own shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Meta    map[string]any  `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func unmarshalData(t *testing.T, env envelope, out any) error {
	t.Helper()
	return json.Unmarshal(env.Data, out)
}

func jsonBody(t *testing.T, payload any) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

// multipartBody builds a multipart form with string fields and at most one
// file part.
func multipartBody(t *testing.T, fields map[string]string, fileField, filename, contentType string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileField != "" {
		header := make(map[string][]string)
		header["Content-Disposition"] = []string{`form-data; name="` + fileField + `"; filename="` + filename + `"`}
		header["Content-Type"] = []string{contentType}
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func withIdentity(r *http.Request, userID uuid.UUID, role string) *http.Request {
	return r.WithContext(ctxWithIdentity(r.Context(), Identity{UserID: userID, Role: role}))
}

type fakeUserStore struct {
	users   map[uuid.UUID]*models.User
	addErr  error
	findErr error
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	store := &fakeUserStore{users: make(map[uuid.UUID]*models.User)}
	for _, u := range users {
		store.users[u.ID] = u
	}
	return store
}

func (f *fakeUserStore) FindByEmail(email string) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindByUsername(username string) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) Add(user *models.User) error {
	if f.addErr != nil {
		return f.addErr
	}
	user.ID = uuid.New()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) FindByID(id uuid.UUID) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.users[id], nil
}

func (f *fakeUserStore) UpdateProfile(id uuid.UUID, updates map[string]any) (*models.User, error) {
	user := f.users[id]
	if user == nil {
		return nil, nil
	}
	if v, ok := updates["full_name"].(string); ok {
		user.FullName = v
	}
	if v, ok := updates["location"].(string); ok {
		user.Location = v
	}
	if v, ok := updates["notifications_enabled"].(bool); ok {
		user.NotificationsEnabled = v
	}
	return user, nil
}

func (f *fakeUserStore) SetAvatarURL(id uuid.UUID, url string) (*models.User, error) {
	user := f.users[id]
	if user == nil {
		return nil, nil
	}
	user.AvatarURL = url
	return user, nil
}

type fakeCommunityStore struct {
	communities map[uuid.UUID]*models.Community
	members     map[uuid.UUID]map[uuid.UUID]bool
	addErr      error
}

func newFakeCommunityStore(communities ...*models.Community) *fakeCommunityStore {
	store := &fakeCommunityStore{
		communities: make(map[uuid.UUID]*models.Community),
		members:     make(map[uuid.UUID]map[uuid.UUID]bool),
	}
	for _, c := range communities {
		store.communities[c.ID] = c
		store.members[c.ID] = make(map[uuid.UUID]bool)
		for _, m := range c.Members {
			store.members[c.ID][m.ID] = true
		}
	}
	return store
}

func (f *fakeCommunityStore) Add(community *models.Community) error {
	if f.addErr != nil {
		return f.addErr
	}
	community.ID = uuid.New()
	f.communities[community.ID] = community
	f.members[community.ID] = map[uuid.UUID]bool{community.AdminID: true}
	return nil
}

func (f *fakeCommunityStore) FindAll() ([]*models.Community, error) {
	out := make([]*models.Community, 0, len(f.communities))
	for id := range f.communities {
		c, _ := f.FindByID(id)
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCommunityStore) FindByID(id uuid.UUID) (*models.Community, error) {
	c, ok := f.communities[id]
	if !ok {
		return nil, nil
	}
	view := *c
	view.Members = nil
	for memberID := range f.members[id] {
		view.Members = append(view.Members, models.User{ID: memberID})
	}
	return &view, nil
}

func (f *fakeCommunityStore) AddMember(communityID, userID uuid.UUID) error {
	f.members[communityID][userID] = true
	return nil
}

func (f *fakeCommunityStore) RemoveMember(communityID, userID uuid.UUID) error {
	delete(f.members[communityID], userID)
	return nil
}

type fakeMemberLookup struct {
	communities map[uuid.UUID][]models.Community
	err         error
}

func (f *fakeMemberLookup) FindCommunities(userID uuid.UUID) ([]models.Community, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.communities[userID], nil
}

type fakeSolutionStore struct {
	solutions        map[uuid.UUID]*models.Solution
	knownCommunities map[uuid.UUID]bool
	submitCount      int
}

func newFakeSolutionStore(communityIDs ...uuid.UUID) *fakeSolutionStore {
	store := &fakeSolutionStore{
		solutions:        make(map[uuid.UUID]*models.Solution),
		knownCommunities: make(map[uuid.UUID]bool),
	}
	for _, id := range communityIDs {
		store.knownCommunities[id] = true
	}
	return store
}

func (f *fakeSolutionStore) Submit(solution *models.Solution) error {
	if !f.knownCommunities[solution.CommunityID] {
		return database.ErrCommunityMissing
	}
	solution.ID = uuid.New()
	f.solutions[solution.ID] = solution
	f.submitCount++
	return nil
}

func (f *fakeSolutionStore) FindByCommunity(communityID uuid.UUID) ([]*models.Solution, error) {
	var out []*models.Solution
	for _, s := range f.solutions {
		if s.CommunityID == communityID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSolutionStore) FindByID(id uuid.UUID) (*models.Solution, error) {
	return f.solutions[id], nil
}

func (f *fakeSolutionStore) Vote(id uuid.UUID, voteType string) (*models.Solution, error) {
	s, ok := f.solutions[id]
	if !ok {
		return nil, nil
	}
	if voteType == models.VoteUp {
		s.Votes++
	} else {
		s.Votes--
	}
	return s, nil
}

type fakeMissionStore struct {
	missions  map[uuid.UUID]*models.Mission
	telemetry map[uuid.UUID][]models.TelemetryReading

	lastLimit  int
	lastOffset int
}

func newFakeMissionStore(missions ...*models.Mission) *fakeMissionStore {
	store := &fakeMissionStore{
		missions:  make(map[uuid.UUID]*models.Mission),
		telemetry: make(map[uuid.UUID][]models.TelemetryReading),
	}
	for _, m := range missions {
		store.missions[m.ID] = m
	}
	return store
}

func (f *fakeMissionStore) Add(mission *models.Mission) error {
	mission.ID = uuid.New()
	f.missions[mission.ID] = mission
	return nil
}

func (f *fakeMissionStore) FindAll() ([]*models.Mission, error) {
	out := make([]*models.Mission, 0, len(f.missions))
	for _, m := range f.missions {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMissionStore) FindByID(id uuid.UUID) (*models.Mission, error) {
	return f.missions[id], nil
}

func (f *fakeMissionStore) Update(id uuid.UUID, updates map[string]any) (*models.Mission, error) {
	mission, ok := f.missions[id]
	if !ok {
		return nil, nil
	}
	if v, ok := updates["name"].(string); ok {
		mission.Name = v
	}
	if v, ok := updates["status"].(string); ok {
		mission.Status = v
	}
	return mission, nil
}

func (f *fakeMissionStore) Delete(id uuid.UUID) (bool, error) {
	if _, ok := f.missions[id]; !ok {
		return false, nil
	}
	delete(f.missions, id)
	return true, nil
}

func (f *fakeMissionStore) AddTelemetry(missionID uuid.UUID, reading *models.TelemetryReading) (*models.Mission, error) {
	mission, ok := f.missions[missionID]
	if !ok {
		return nil, nil
	}
	reading.ID = uuid.New()
	reading.MissionID = missionID
	reading.Timestamp = time.Now().UTC()
	f.telemetry[missionID] = append(f.telemetry[missionID], *reading)
	return mission, nil
}

func (f *fakeMissionStore) FindTelemetry(missionID uuid.UUID, limit, offset int) ([]models.TelemetryReading, error) {
	f.lastLimit = limit
	f.lastOffset = offset
	return f.telemetry[missionID], nil
}

// fakeUploader records upload calls and returns a deterministic URL.
type fakeUploader struct {
	calls []string
	err   error
}

func (f *fakeUploader) Upload(_ context.Context, folder, filename, contentType string, body io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	io.Copy(io.Discard, body)
	f.calls = append(f.calls, folder+"/"+filename)
	return "https://assets.test/" + folder + "/" + filename, nil
}

type fakeNASA struct {
	photos   json.RawMessage
	weather  json.RawMessage
	apod     json.RawMessage
	manifest json.RawMessage
	random   json.RawMessage
	err      error

	lastRover string
	lastPage  int
	lastSol   *int
}

func (f *fakeNASA) MarsPhotos(_ context.Context, rover string, sol *int, earthDate, camera string, page int) (json.RawMessage, error) {
	f.lastRover = rover
	f.lastPage = page
	f.lastSol = sol
	return f.photos, f.err
}

func (f *fakeNASA) MarsWeather(context.Context) (json.RawMessage, error) {
	return f.weather, f.err
}

func (f *fakeNASA) APOD(_ context.Context, date string, hd bool) (json.RawMessage, error) {
	return f.apod, f.err
}

func (f *fakeNASA) RoverManifest(_ context.Context, rover string) (json.RawMessage, error) {
	f.lastRover = rover
	return f.manifest, f.err
}

func (f *fakeNASA) RandomMarsPhoto(context.Context) (json.RawMessage, error) {
	return f.random, f.err
}
