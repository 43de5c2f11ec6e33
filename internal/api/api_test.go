package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notesapp/notes-backend/internal/auth"
	"github.com/notesapp/notes-backend/internal/images"
	"github.com/notesapp/notes-backend/internal/model"
	"github.com/notesapp/notes-backend/internal/store/memory"
)

const loginURL = "/Users/Login"

type testEnv struct {
	server *httptest.Server
	client *http.Client
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWith(t, auth.NewMockAuthorizer())
}

func newTestEnvWith(t *testing.T, authorizer auth.Authorizer) *testEnv {
	t.Helper()
	router := NewRouter(memory.New(), images.NewMemStore(), authorizer, loginURL)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return &testEnv{server: server, client: client}
}

func (e *testEnv) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := e.client.Do(req)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+auth.LocalDevAPIKey)
	return req
}

func (e *testEnv) createUser(t *testing.T, userID string) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"userId": userID, "email": userID + "@example.test"})
	resp, err := e.client.Post(e.server.URL+"/Users", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func (e *testEnv) rootFolder(t *testing.T) model.Folder {
	t.Helper()
	req, _ := http.NewRequest("GET", e.server.URL+"/Folders/Root", nil)
	resp := e.do(t, e.authed(req))
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var root model.Folder
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&root))
	return root
}

func multipartBody(t *testing.T, fields map[string]string, imageField, imageName string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if imageField != "" {
		fw, err := w.CreateFormFile(imageField, imageName)
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake-image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func (e *testEnv) createFolder(t *testing.T, title string, parentID string) model.Folder {
	t.Helper()
	fields := map[string]string{"title": title}
	if parentID != "" {
		fields["parentFolderId"] = parentID
	}
	body, ct := multipartBody(t, fields, "image", "cover.png")
	req, _ := http.NewRequest("POST", e.server.URL+"/Folders/Create", body)
	req.Header.Set("Content-Type", ct)
	resp := e.do(t, e.authed(req))
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var folder model.Folder
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&folder))
	return folder
}

func (e *testEnv) createNote(t *testing.T, folderID, title string, extra url.Values) model.Note {
	t.Helper()
	form := url.Values{"folderId": {folderID}, "title": {title}}
	for k, vs := range extra {
		form[k] = vs
	}
	req, _ := http.NewRequest("POST", e.server.URL+"/Notes/Create", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := e.do(t, e.authed(req))
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var note model.Note
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&note))
	return note
}

func TestAPI_UnauthenticatedRedirectsToLogin(t *testing.T) {
	e := newTestEnv(t)
	req, _ := http.NewRequest("GET", e.server.URL+"/Folders/List", nil)
	resp := e.do(t, req)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, loginURL, resp.Header.Get("Location"))
}

func TestAPI_UserSignupCreatesRoot(t *testing.T) {
	e := newTestEnv(t)
	e.createUser(t, auth.LocalDevUserID)

	root := e.rootFolder(t)
	assert.True(t, root.IsRoot)
	assert.Equal(t, "Root", root.Title)

	resp, err := e.client.Get(e.server.URL + "/Users/" + auth.LocalDevUserID)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_FolderLifecycle(t *testing.T) {
	e := newTestEnv(t)
	e.createUser(t, auth.LocalDevUserID)
	root := e.rootFolder(t)

	folder := e.createFolder(t, "Work", "")
	require.NotNil(t, folder.ParentFolderID)
	assert.Equal(t, root.FolderID, *folder.ParentFolderID)
	assert.NotEmpty(t, folder.ImageName)

	// Details shows the child under the root.
	req, _ := http.NewRequest("GET", e.server.URL+"/Folders/Details/"+root.FolderID, nil)
	resp := e.do(t, e.authed(req))
	var view model.FolderView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	_ = resp.Body.Close()
	require.Len(t, view.ChildFolders, 1)
	assert.Equal(t, "Work", view.ChildFolders[0].Title)

	// Cover image streams back.
	req, _ = http.NewRequest("GET", e.server.URL+"/Folders/Image/"+folder.FolderID, nil)
	resp = e.do(t, e.authed(req))
	imgData, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "fake-image-bytes", string(imgData))

	// Rename via edit.
	body, ct := multipartBody(t, map[string]string{"title": "Work v2"}, "", "")
	req, _ = http.NewRequest("POST", e.server.URL+"/Folders/Edit/"+folder.FolderID, body)
	req.Header.Set("Content-Type", ct)
	resp = e.do(t, e.authed(req))
	var edited model.Folder
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&edited))
	_ = resp.Body.Close()
	assert.Equal(t, "Work v2", edited.Title)
	assert.Equal(t, folder.Version+1, edited.Version)

	// Confirm page for an empty folder returns the folder itself.
	req, _ = http.NewRequest("GET", e.server.URL+"/Folders/Delete/"+folder.FolderID, nil)
	resp = e.do(t, e.authed(req))
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Delete and land on the former parent.
	req, _ = http.NewRequest("POST", e.server.URL+"/Folders/Delete/"+folder.FolderID, nil)
	resp = e.do(t, e.authed(req))
	var deleted map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&deleted))
	_ = resp.Body.Close()
	assert.Equal(t, root.FolderID, deleted["parentFolderId"])
}

func TestAPI_RootEditRedirectsToDetails(t *testing.T) {
	e := newTestEnv(t)
	e.createUser(t, auth.LocalDevUserID)
	root := e.rootFolder(t)

	body, ct := multipartBody(t, map[string]string{"title": "Hijacked"}, "", "")
	req, _ := http.NewRequest("POST", e.server.URL+"/Folders/Edit/"+root.FolderID, body)
	req.Header.Set("Content-Type", ct)
	resp := e.do(t, e.authed(req))
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/Folders/Details/"+root.FolderID, resp.Header.Get("Location"))

	assert.Equal(t, "Root", e.rootFolder(t).Title)
}

func TestAPI_DeleteGuards(t *testing.T) {
	e := newTestEnv(t)
	e.createUser(t, auth.LocalDevUserID)
	root := e.rootFolder(t)
	folder := e.createFolder(t, "Busy", "")
	e.createNote(t, folder.FolderID, "keepme", nil)

	// Confirm page bounces back to details when the folder is not deletable.
	req, _ := http.NewRequest("GET", e.server.URL+"/Folders/Delete/"+folder.FolderID, nil)
	resp := e.do(t, e.authed(req))
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/Folders/Details/"+folder.FolderID, resp.Header.Get("Location"))

	// Forced delete is a 409.
	req, _ = http.NewRequest("POST", e.server.URL+"/Folders/Delete/"+folder.FolderID, nil)
	resp = e.do(t, e.authed(req))
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Root delete is a 409 too.
	req, _ = http.NewRequest("POST", e.server.URL+"/Folders/Delete/"+root.FolderID, nil)
	resp = e.do(t, e.authed(req))
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAPI_NoteLifecycleAndValidation(t *testing.T) {
	e := newTestEnv(t)
	e.createUser(t, auth.LocalDevUserID)
	root := e.rootFolder(t)

	note := e.createNote(t, root.FolderID, "groceries", url.Values{
		"text":        {"milk, eggs"},
		"priority":    {"1"},
		"isFavourite": {"on"},
	})
	assert.Equal(t, model.PriorityHigh, note.Priority)
	assert.True(t, note.IsFavourite)

	// Title over the limit is a 400.
	form := url.Values{"folderId": {root.FolderID}, "title": {strings.Repeat("x", model.MaxNoteTitleLen+1)}}
	req, _ := http.NewRequest("POST", e.server.URL+"/Notes/Create", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := e.do(t, e.authed(req))
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Edit updates text and clears the favourite flag.
	form = url.Values{"folderId": {root.FolderID}, "title": {"groceries"}, "text": {"just milk"}}
	req, _ = http.NewRequest("POST", e.server.URL+"/Notes/Edit/"+note.NoteID, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp = e.do(t, e.authed(req))
	var edited model.Note
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&edited))
	_ = resp.Body.Close()
	assert.Equal(t, "just milk", edited.Text)
	assert.False(t, edited.IsFavourite)
	assert.Equal(t, note.Version+1, edited.Version)

	// Delete returns the folder for the redirect.
	req, _ = http.NewRequest("POST", e.server.URL+"/Notes/Delete/"+note.NoteID, nil)
	resp = e.do(t, e.authed(req))
	var deleted map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&deleted))
	_ = resp.Body.Close()
	assert.Equal(t, root.FolderID, deleted["folderId"])

	req, _ = http.NewRequest("GET", e.server.URL+"/Notes/Details/"+note.NoteID, nil)
	resp = e.do(t, e.authed(req))
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_SortingParams(t *testing.T) {
	e := newTestEnv(t)
	e.createUser(t, auth.LocalDevUserID)
	root := e.rootFolder(t)

	e.createNote(t, root.FolderID, "banana", url.Values{"priority": {"2"}})
	e.createNote(t, root.FolderID, "apple", url.Values{"priority": {"0"}})

	titlesOf := func(query string) []string {
		req, _ := http.NewRequest("GET", e.server.URL+"/Folders/Details/"+root.FolderID+query, nil)
		resp := e.do(t, e.authed(req))
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var view model.FolderView
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
		out := make([]string, len(view.Notes))
		for i, n := range view.Notes {
			out[i] = n.Title
		}
		return out
	}

	// Default: title descending.
	assert.Equal(t, []string{"banana", "apple"}, titlesOf(""))
	// dir present flips to ascending, whatever its value.
	assert.Equal(t, []string{"apple", "banana"}, titlesOf("?dir="))
	// Numeric sortType: 1 = priority; descending puts the critical note first.
	assert.Equal(t, []string{"banana", "apple"}, titlesOf("?sortType=1"))
	assert.Equal(t, []string{"apple", "banana"}, titlesOf("?sortType=priority&dir=asc"))
	// Unknown sort key is a 400.
	req, _ := http.NewRequest("GET", e.server.URL+"/Folders/Details/"+root.FolderID+"?sortType=bogus", nil)
	resp := e.do(t, e.authed(req))
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_SearchAndFavourites(t *testing.T) {
	e := newTestEnv(t)
	e.createUser(t, auth.LocalDevUserID)
	root := e.rootFolder(t)
	sub := e.createFolder(t, "Sub", "")

	e.createNote(t, root.FolderID, "Shopping", nil)
	e.createNote(t, sub.FolderID, "shop list", url.Values{"isFavourite": {"true"}})
	e.createNote(t, sub.FolderID, "Taxes", nil)

	form := url.Values{"searchQuery": {"SHOP"}}
	req, _ := http.NewRequest("POST", e.server.URL+"/Notes/All", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := e.do(t, e.authed(req))
	var result struct {
		Notes []model.Note `json:"notes"`
		Count int          `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	_ = resp.Body.Close()
	assert.Equal(t, 2, result.Count)

	req, _ = http.NewRequest("GET", e.server.URL+"/Notes/Favourites", nil)
	resp = e.do(t, e.authed(req))
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	_ = resp.Body.Close()
	require.Equal(t, 1, result.Count)
	assert.Equal(t, "shop list", result.Notes[0].Title)
}

func TestAPI_HealthEndpoint(t *testing.T) {
	e := newTestEnv(t)
	BindServiceHealth(func() bool { return true })
	t.Cleanup(func() { BindServiceHealth(func() bool { return false }) })

	resp, err := e.client.Get(e.server.URL + "/api/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestAPI_CrossUserAccessIsForbidden(t *testing.T) {
	e := newTestEnvWith(t, auth.NewStaticAuthorizer(map[string]string{
		"sk_alice": "alice",
		"sk_bob":   "bob",
	}))
	e.createUser(t, "alice")
	e.createUser(t, "bob")

	asUser := func(req *http.Request, key string) *http.Request {
		req.Header.Set("Authorization", "Bearer "+key)
		return req
	}

	body, ct := multipartBody(t, map[string]string{"title": "Private"}, "image", "cover.png")
	req, _ := http.NewRequest("POST", e.server.URL+"/Folders/Create", body)
	req.Header.Set("Content-Type", ct)
	resp := e.do(t, asUser(req, "sk_alice"))
	var folder model.Folder
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&folder))
	_ = resp.Body.Close()

	// Bob can resolve the id but never read it.
	req, _ = http.NewRequest("GET", e.server.URL+"/Folders/Details/"+folder.FolderID, nil)
	resp = e.do(t, asUser(req, "sk_bob"))
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// A made-up id is a 404, not a 403 leak.
	req, _ = http.NewRequest("GET", e.server.URL+fmt.Sprintf("/Folders/Details/%s", "00000000-0000-0000-0000-000000000000"), nil)
	resp = e.do(t, asUser(req, "sk_alice"))
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
