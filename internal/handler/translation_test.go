package handler

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const translationReply = `{
	"translation": "I went to the beach yesterday.",
	"grammarFeedback": "Good use of the past tense.",
	"naturalSuggestion": "Yesterday I hit the beach.",
	"explanation": "Both orders are natural in English."
}`

func TestTranslate_ReturnsFeedbackAndLogsHistory(t *testing.T) {
	app := newTestApp(t, &stubCompletion{reply: translationReply})
	token := registerUser(t, app, "alice")

	resp := doJSON(t, app, "POST", "/api/translate", token, fiber.Map{
		"japaneseText": "昨日、海に行きました。",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result struct {
		Translation       string  `json:"translation"`
		GrammarFeedback   *string `json:"grammarFeedback"`
		NaturalSuggestion *string `json:"naturalSuggestion"`
	}
	decodeJSON(t, resp, &result)
	assert.Equal(t, "I went to the beach yesterday.", result.Translation)
	require.NotNil(t, result.GrammarFeedback)
	assert.Equal(t, "Good use of the past tense.", *result.GrammarFeedback)

	resp = doJSON(t, app, "GET", "/api/translation-history", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var history struct {
		Entries []struct {
			JapaneseText       string `json:"japaneseText"`
			EnglishTranslation string `json:"englishTranslation"`
		} `json:"entries"`
	}
	decodeJSON(t, resp, &history)
	require.Len(t, history.Entries, 1)
	assert.Equal(t, "昨日、海に行きました。", history.Entries[0].JapaneseText)
	assert.Equal(t, "I went to the beach yesterday.", history.Entries[0].EnglishTranslation)
}

func TestTranslate_RequiresText(t *testing.T) {
	app := newTestApp(t, &stubCompletion{reply: translationReply})
	token := registerUser(t, app, "alice")

	resp := doJSON(t, app, "POST", "/api/translate", token, fiber.Map{
		"japaneseText": "   ",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestTranslate_ModelGarbageIsUnavailable(t *testing.T) {
	app := newTestApp(t, &stubCompletion{reply: "sorry, I cannot help with that"})
	token := registerUser(t, app, "alice")

	resp := doJSON(t, app, "POST", "/api/translate", token, fiber.Map{
		"japaneseText": "こんにちは",
	})
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestTranslationHistory_Search(t *testing.T) {
	app := newTestApp(t, &stubCompletion{reply: translationReply})
	token := registerUser(t, app, "alice")

	resp := doJSON(t, app, "POST", "/api/translate", token, fiber.Map{
		"japaneseText": "昨日、海に行きました。",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, "GET", "/api/translation-history?q=beach", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var history struct {
		Entries []struct{} `json:"entries"`
	}
	decodeJSON(t, resp, &history)
	assert.Len(t, history.Entries, 1)

	resp = doJSON(t, app, "GET", "/api/translation-history?q=mountain", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &history)
	assert.Empty(t, history.Entries)
}

func TestTranslationHistory_DeleteIsScopedToOwner(t *testing.T) {
	app := newTestApp(t, &stubCompletion{reply: translationReply})
	aliceToken := registerUser(t, app, "alice")
	bobToken := registerUser(t, app, "bob")

	resp := doJSON(t, app, "POST", "/api/translate", aliceToken, fiber.Map{
		"japaneseText": "こんにちは",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, "GET", "/api/translation-history", aliceToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var history struct {
		Entries []struct {
			ID int64 `json:"id"`
		} `json:"entries"`
	}
	decodeJSON(t, resp, &history)
	require.Len(t, history.Entries, 1)
	entryID := history.Entries[0].ID

	resp = doJSON(t, app, "DELETE", fmt.Sprintf("/api/translation-history/%d", entryID), bobToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, "DELETE", fmt.Sprintf("/api/translation-history/%d", entryID), aliceToken, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestDictionary_Lookup(t *testing.T) {
	app := newTestApp(t, &stubCompletion{reply: "cat (noun): a small domesticated feline."})
	token := registerUser(t, app, "alice")

	resp := doJSON(t, app, "POST", "/api/dictionary", token, fiber.Map{
		"word": "cat",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result struct {
		Word  string `json:"word"`
		Entry string `json:"entry"`
	}
	decodeJSON(t, resp, &result)
	assert.Equal(t, "cat", result.Word)
	assert.Contains(t, result.Entry, "feline")
}

func TestDictionary_RequiresWord(t *testing.T) {
	app := newTestApp(t, &stubCompletion{})
	token := registerUser(t, app, "alice")

	resp := doJSON(t, app, "POST", "/api/dictionary", token, fiber.Map{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
