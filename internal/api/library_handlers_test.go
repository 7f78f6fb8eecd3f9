package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kafkaBookJSON = `{"book_id":"bk-kafka","title":"Die Verwandlung","authors":["Franz Kafka"],"thumbnail":"https://example.com/cover.jpg"}`

func addBook(t *testing.T, server *Server, token, shelfID, body string) map[string]any {
	t.Helper()

	w := doRequest(t, server, http.MethodPost, "/api/v1/shelves/"+shelfID+"/books", token, body)
	require.Equal(t, http.StatusOK, w.Code, "add book failed: %s", w.Body.String())
	return dataMap(t, w)
}

func shelfBooks(t *testing.T, server *Server, token, shelfID string) []any {
	t.Helper()

	w := doRequest(t, server, http.MethodGet, "/api/v1/shelves/"+shelfID+"/books", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	books, ok := dataMap(t, w)["books"].([]any)
	require.True(t, ok)
	return books
}

func TestAddBookToShelf(t *testing.T) {
	server := setupTestServer(t)

	data := addBook(t, server, testTokenAnna, "wishlist", kafkaBookJSON)
	assert.Equal(t, "Book added", data["message"])
	assert.NotContains(t, data, "moved_from")

	books := shelfBooks(t, server, testTokenAnna, "wishlist")
	require.Len(t, books, 1)

	book, ok := books[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "bk-kafka", book["book_id"])
	assert.Equal(t, "Die Verwandlung", book["title"])
}

func TestAddBookToShelf_StandardMove(t *testing.T) {
	server := setupTestServer(t)

	addBook(t, server, testTokenAnna, "wishlist", kafkaBookJSON)

	// Adding to another standard shelf moves the book and reports the source.
	data := addBook(t, server, testTokenAnna, "reading", kafkaBookJSON)
	assert.Equal(t, "Book moved", data["message"])

	movedFrom, ok := data["moved_from"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "wishlist", movedFrom["shelf_id"])
	assert.Equal(t, "Leseliste", movedFrom["shelf_title"])

	assert.Empty(t, shelfBooks(t, server, testTokenAnna, "wishlist"))
	assert.Len(t, shelfBooks(t, server, testTokenAnna, "reading"), 1)
}

func TestAddBookToShelf_AlreadyInShelf(t *testing.T) {
	server := setupTestServer(t)

	addBook(t, server, testTokenAnna, "wishlist", kafkaBookJSON)

	w := doRequest(t, server, http.MethodPost, "/api/v1/shelves/wishlist/books", testTokenAnna, kafkaBookJSON)

	assert.Equal(t, http.StatusConflict, w.Code)

	result := decodeEnvelope(t, w)
	assert.Equal(t, "ALREADY_IN_SHELF", result.Code)
}

func TestAddBookToShelf_CustomShelvesNotExclusive(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(t, server, http.MethodPost, "/api/v1/shelves", testTokenAnna, `{"title":"Klassiker"}`)
	require.Equal(t, http.StatusOK, w.Code)
	customID := dataMap(t, w)["id"].(string)

	addBook(t, server, testTokenAnna, "reading", kafkaBookJSON)
	data := addBook(t, server, testTokenAnna, customID, kafkaBookJSON)

	// Adding to a custom shelf never displaces a standard membership.
	assert.NotContains(t, data, "moved_from")
	assert.Len(t, shelfBooks(t, server, testTokenAnna, "reading"), 1)
	assert.Len(t, shelfBooks(t, server, testTokenAnna, customID), 1)
}

func TestAddBookToShelf_ShelfNotFound(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(t, server, http.MethodPost, "/api/v1/shelves/shf-missing/books", testTokenAnna, kafkaBookJSON)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveBookFromShelf(t *testing.T) {
	server := setupTestServer(t)

	addBook(t, server, testTokenAnna, "wishlist", kafkaBookJSON)

	w := doRequest(t, server, http.MethodDelete, "/api/v1/shelves/wishlist/books/bk-kafka", testTokenAnna, "")
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Empty(t, shelfBooks(t, server, testTokenAnna, "wishlist"))
}

func TestRemoveBookFromShelf_AbsentBookIsNoop(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(t, server, http.MethodDelete, "/api/v1/shelves/wishlist/books/bk-missing", testTokenAnna, "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRemoveBookFromShelf_UnknownShelfIsNoop(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(t, server, http.MethodDelete, "/api/v1/shelves/shf-missing/books/bk-kafka", testTokenAnna, "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListShelfBooks_UnknownShelfIsEmpty(t *testing.T) {
	server := setupTestServer(t)

	assert.Empty(t, shelfBooks(t, server, testTokenAnna, "shf-missing"))
}

func TestListShelvesForBook(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(t, server, http.MethodPost, "/api/v1/shelves", testTokenAnna, `{"title":"Klassiker"}`)
	require.Equal(t, http.StatusOK, w.Code)
	customID := dataMap(t, w)["id"].(string)

	addBook(t, server, testTokenAnna, "completed", kafkaBookJSON)
	addBook(t, server, testTokenAnna, customID, kafkaBookJSON)

	w = doRequest(t, server, http.MethodGet, "/api/v1/books/bk-kafka/shelves", testTokenAnna, "")
	require.Equal(t, http.StatusOK, w.Code)

	shelves, ok := dataMap(t, w)["shelves"].([]any)
	require.True(t, ok)
	require.Len(t, shelves, 2)

	ids := make([]string, 0, len(shelves))
	for _, s := range shelves {
		ids = append(ids, s.(map[string]any)["id"].(string))
	}
	assert.Contains(t, ids, "completed")
	assert.Contains(t, ids, customID)
}

func TestLibrary_UserIsolation(t *testing.T) {
	server := setupTestServer(t)

	addBook(t, server, testTokenAnna, "wishlist", kafkaBookJSON)

	assert.Empty(t, shelfBooks(t, server, testTokenBen, "wishlist"))
}
