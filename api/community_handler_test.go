package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/marsconnect/mars-quest-backend/models"
)

func TestCreateCommunity(t *testing.T) {
	store := newFakeCommunityStore()
	handler := newCommunityHandler(store, &fakeMemberLookup{})

	adminID := uuid.New()
	req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/communities/", jsonBody(t, map[string]string{
		"name":        "Red Planet Pioneers",
		"description": "Habitat design discussions",
	})), adminID, models.RoleUser)
	rec := httptest.NewRecorder()
	handler.createCommunity()(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var view models.CommunityView
	require.NoError(t, unmarshalData(t, decodeEnvelope(t, rec), &view))
	assert.Equal(t, "Red Planet Pioneers", view.Name)
	assert.Equal(t, adminID, view.AdminID)
	assert.Contains(t, view.MemberIDs, adminID, "the admin is the first member")
	assert.Equal(t, 0, view.SolutionsCount)
}

func TestCreateCommunityRequiresIdentity(t *testing.T) {
	handler := newCommunityHandler(newFakeCommunityStore(), &fakeMemberLookup{})

	rec := httptest.NewRecorder()
	handler.createCommunity()(rec, httptest.NewRequest(http.MethodPost, "/api/communities/", jsonBody(t, map[string]string{
		"name":        "Red Planet Pioneers",
		"description": "Habitat design discussions",
	})))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized: Admin ID not found", decodeEnvelope(t, rec).Error)
}

func TestCreateCommunityValidation(t *testing.T) {
	handler := newCommunityHandler(newFakeCommunityStore(), &fakeMemberLookup{})

	tests := []struct {
		name    string
		payload map[string]string
		message string
	}{
		{"short name", map[string]string{"name": "ab", "description": "long enough"},
			"Community name must be at least 3 characters"},
		{"short description", map[string]string{"name": "Pioneers", "description": "abc"},
			"Community description must be at least 4 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/communities/", jsonBody(t, tt.payload)), uuid.New(), models.RoleUser)
			rec := httptest.NewRecorder()
			handler.createCommunity()(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decodeEnvelope(t, rec).Error, tt.message)
		})
	}
}

func TestCreateCommunityDuplicateName(t *testing.T) {
	store := newFakeCommunityStore()
	store.addErr = errors.New(`ERROR: duplicate key value violates unique constraint "idx_communities_name"`)
	handler := newCommunityHandler(store, &fakeMemberLookup{})

	req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/communities/", jsonBody(t, map[string]string{
		"name":        "Red Planet Pioneers",
		"description": "Habitat design discussions",
	})), uuid.New(), models.RoleUser)
	rec := httptest.NewRecorder()
	handler.createCommunity()(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Community with this name already exists", decodeEnvelope(t, rec).Error)
}

func TestJoinCommunity(t *testing.T) {
	community := &models.Community{ID: uuid.New(), Name: "Pioneers", AdminID: uuid.New()}
	store := newFakeCommunityStore(community)
	handler := newCommunityHandler(store, &fakeMemberLookup{})

	userID := uuid.New()
	join := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/communities/"+community.ID.String()+"/join", nil)
		req = withURLParam(req, "communityID", community.ID.String())
		req = withIdentity(req, userID, models.RoleUser)
		rec := httptest.NewRecorder()
		handler.joinCommunity()(rec, req)
		return rec
	}

	rec := join()
	require.Equal(t, http.StatusOK, rec.Code)

	var view models.CommunityView
	require.NoError(t, unmarshalData(t, decodeEnvelope(t, rec), &view))
	assert.Contains(t, view.MemberIDs, userID)

	// joining again changes nothing
	rec = join()
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, unmarshalData(t, decodeEnvelope(t, rec), &view))
	assert.Len(t, view.MemberIDs, 1)
}

func TestJoinUnknownCommunity(t *testing.T) {
	handler := newCommunityHandler(newFakeCommunityStore(), &fakeMemberLookup{})

	unknown := uuid.New().String()
	req := httptest.NewRequest(http.MethodPost, "/api/communities/"+unknown+"/join", nil)
	req = withURLParam(req, "communityID", unknown)
	req = withIdentity(req, uuid.New(), models.RoleUser)
	rec := httptest.NewRecorder()
	handler.joinCommunity()(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Community not found", decodeEnvelope(t, rec).Error)
}

func TestLeaveCommunity(t *testing.T) {
	member := models.User{ID: uuid.New()}
	community := &models.Community{ID: uuid.New(), Name: "Pioneers", AdminID: uuid.New(), Members: []models.User{member}}
	store := newFakeCommunityStore(community)
	handler := newCommunityHandler(store, &fakeMemberLookup{})

	req := httptest.NewRequest(http.MethodPost, "/api/communities/"+community.ID.String()+"/leave", nil)
	req = withURLParam(req, "communityID", community.ID.String())
	req = withIdentity(req, member.ID, models.RoleUser)
	rec := httptest.NewRecorder()
	handler.leaveCommunity()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var view models.CommunityView
	require.NoError(t, unmarshalData(t, decodeEnvelope(t, rec), &view))
	assert.NotContains(t, view.MemberIDs, member.ID)
}

// Leaving a community the caller never joined succeeds without effect.
func TestLeaveCommunityNotAMember(t *testing.T) {
	community := &models.Community{ID: uuid.New(), Name: "Pioneers", AdminID: uuid.New()}
	handler := newCommunityHandler(newFakeCommunityStore(community), &fakeMemberLookup{})

	req := httptest.NewRequest(http.MethodPost, "/api/communities/"+community.ID.String()+"/leave", nil)
	req = withURLParam(req, "communityID", community.ID.String())
	req = withIdentity(req, uuid.New(), models.RoleUser)
	rec := httptest.NewRecorder()
	handler.leaveCommunity()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetCommunities(t *testing.T) {
	store := newFakeCommunityStore(
		&models.Community{ID: uuid.New(), Name: "Pioneers", AdminID: uuid.New()},
		&models.Community{ID: uuid.New(), Name: "Terraformers", AdminID: uuid.New()},
	)
	handler := newCommunityHandler(store, &fakeMemberLookup{})

	rec := httptest.NewRecorder()
	handler.getCommunities()(rec, httptest.NewRequest(http.MethodGet, "/api/communities/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, float64(2), env.Meta["total"])
}

func TestGetUserCommunities(t *testing.T) {
	userID := uuid.New()
	lookup := &fakeMemberLookup{communities: map[uuid.UUID][]models.Community{
		userID: {{ID: uuid.New(), Name: "Pioneers"}},
	}}
	handler := newCommunityHandler(newFakeCommunityStore(), lookup)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/communities/user/"+userID.String(), nil), "userID", userID.String())
	rec := httptest.NewRecorder()
	handler.getUserCommunities()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeEnvelope(t, rec).Meta["total"])
}

func TestGetUserCommunitiesUnknownUser(t *testing.T) {
	lookup := &fakeMemberLookup{err: gorm.ErrRecordNotFound}
	handler := newCommunityHandler(newFakeCommunityStore(), lookup)

	unknown := uuid.New().String()
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/communities/user/"+unknown, nil), "userID", unknown)
	rec := httptest.NewRecorder()
	handler.getUserCommunities()(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decodeEnvelope(t, rec).Error)
}
