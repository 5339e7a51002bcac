package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/mandaniainarandriambinintsoa/Factupro/internal/interfaces/http"
	pkgjwt "github.com/mandaniainarandriambinintsoa/Factupro/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "secret-de-test-pour-les-tests-unitaires"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testEmail     = "jean@exemple.fr"
	testIssuer    = "factupro-test"
	testExpMin    = 60
)

// buildTestApp construit une application Fiber minimale avec AuthMiddleware et
// un handler factice qui renvoie 200 si le middleware laisse passer.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":      true,
				"user_id": apphttp.GetUserID(c),
			})
		},
	)
	return app
}

// tokenFor génère un JWT signé avec le secret de test.
func tokenFor(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, testIssuer, testExpMin)
	require.NoError(t, err, "le token JWT doit pouvoir être généré")
	return "Bearer " + tok
}

// doRequest lance une requête GET /protected et renvoie la réponse.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Cas 1: token valide, le handler reçoit le UserID du claim.
func TestAuthMiddleware_TokenValide(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenFor(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, testUserID, body["user_id"],
		"le UserID du token doit être exposé via GetUserID")
}

// Cas 2: sans en-tête Authorization, 401 MISSING_TOKEN.
func TestAuthMiddleware_SansHeader_Retourne401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

// Cas 3: en-tête malformé (pas de schéma Bearer), 401 INVALID_TOKEN.
func TestAuthMiddleware_HeaderMalforme_Retourne401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "Basic abcdef")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

// Cas 4: token invalide ou corrompu, 401.
func TestAuthMiddleware_TokenInvalide_Retourne401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "Bearer token.invalide.ici")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Cas 5: token signé avec un autre secret, 401.
func TestAuthMiddleware_MauvaisSecret_Retourne401(t *testing.T) {
	tok, err := pkgjwt.Generate("un-autre-secret", testUserID, testEmail, testIssuer, testExpMin)
	require.NoError(t, err)

	app := buildTestApp()
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests pkg jwt — cohérence generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateEtParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, email, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, userID)
	assert.Equal(t, testEmail, email)
}

func TestJWT_TokenExpire_RetourneErreur(t *testing.T) {
	// Expiration -1 minute (déjà expiré)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "un token expiré doit être rejeté")
}
