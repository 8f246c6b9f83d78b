package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/household-services/db"
	"github.com/meinhoongagan/household-services/db/dbtest"
	"github.com/meinhoongagan/household-services/services"
	"github.com/meinhoongagan/household-services/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const secret = "route-test-secret"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	conn := dbtest.New(t)
	hasher := utils.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, db.SeedAdmin(conn, hasher, "admin@example.com", "admin-pw"))

	return New(Deps{
		JWTSecret:     secret,
		Gate:          services.NewGate(conn),
		Auth:          services.NewAuthService(conn, hasher, utils.NewTokenIssuer(secret, time.Hour), utils.NewLocalStore(t.TempDir())),
		Catalog:       services.NewCatalogService(conn),
		Professionals: services.NewProfessionalService(conn),
		Customers:     services.NewCustomerService(conn),
		Bookings:      services.NewBookingService(conn, nil),
		Reviews:       services.NewReviewService(conn),
	})
}

func call(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return send(t, app, req)
}

func send(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]interface{}) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp.StatusCode, out
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	status, body := call(t, app, "POST", "/login", "", fiber.Map{"email": email, "password": password})
	require.Equal(t, 200, status, body)
	return body["access_token"].(string)
}

func registerProfessional(t *testing.T, app *fiber.App, email string) (int, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"email": email, "password": "pro-pw", "fullname": "Meera Pro",
		"experience": "5", "address": "7 Residency Road", "pincode": "560025",
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.WriteField("available_services", "plumbing"))
	require.NoError(t, w.WriteField("available_services", "ac repair"))
	part, err := w.CreateFormFile("documents", "licence.pdf")
	require.NoError(t, err)
	_, _ = part.Write([]byte("%PDF-1.4"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/register/professional", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return send(t, app, req)
}

func TestMarketplaceFlow(t *testing.T) {
	app := newTestApp(t)

	status, _ := call(t, app, "POST", "/register/customer", "", fiber.Map{
		"email": "cust@example.com", "password": "cust-pw", "fullname": "Asha",
		"address": "12 MG Road", "pincode": "560001",
	})
	require.Equal(t, 201, status)

	status, body := registerProfessional(t, app, "pro@example.com")
	require.Equal(t, 201, status, body)
	proID := int(body["professional_id"].(float64))

	// unapproved professional cannot log in yet
	status, body = call(t, app, "POST", "/login", "", fiber.Map{"email": "pro@example.com", "password": "pro-pw"})
	assert.Equal(t, 403, status)
	assert.Equal(t, "unauthorized", body["error"])

	adminToken := login(t, app, "admin@example.com", "admin-pw")

	status, _ = call(t, app, "PUT", fmt.Sprintf("/admin/professional/block_unblock/%d", proID), adminToken, fiber.Map{})
	assert.Equal(t, 400, status, "missing boolean")
	status, _ = call(t, app, "PUT", fmt.Sprintf("/admin/professional/block_unblock/%d", proID), adminToken, fiber.Map{"is_approved": true})
	require.Equal(t, 200, status)

	status, body = call(t, app, "POST", "/admin/service/add", adminToken, fiber.Map{
		"name": "AC Repair", "description": "split and window units", "price": 500, "time_required": "2 hours",
	})
	require.Equal(t, 201, status, body)
	serviceID := int(body["service"].(map[string]interface{})["id"].(float64))

	status, body = call(t, app, "GET", "/admin/service/summary", adminToken, nil)
	require.Equal(t, 200, status)
	assert.Equal(t, float64(1), body["approved_count"])
	assert.Equal(t, float64(500), body["approved_total_money"])

	status, body = call(t, app, "GET", fmt.Sprintf("/admin/service/%d", serviceID), adminToken, nil)
	require.Equal(t, 200, status)
	assert.Equal(t, "ac repair", body["service"].(map[string]interface{})["name"])

	status, body = call(t, app, "GET", "/admin/professional/details", adminToken, nil)
	require.Equal(t, 200, status)
	pros := body["professionals"].([]interface{})
	require.Len(t, pros, 1)
	assert.Nil(t, pros[0].(map[string]interface{})["average_rating"])
	assert.Equal(t, "plumbing, ac repair", pros[0].(map[string]interface{})["available_services"])

	custToken := login(t, app, "cust@example.com", "cust-pw")
	proToken := login(t, app, "pro@example.com", "pro-pw")

	status, body = call(t, app, "GET", "/customer/services/search/repair", custToken, nil)
	require.Equal(t, 200, status)
	assert.Len(t, body["services"], 1)

	status, body = call(t, app, "POST", fmt.Sprintf("/customer/book/%d", serviceID), custToken, nil)
	require.Equal(t, 201, status, body)
	booking := body["booking"].(map[string]interface{})
	assert.Equal(t, "requested", booking["status"])
	assert.Nil(t, booking["professional_id"])
	bookingID := int(booking["id"].(float64))

	for _, step := range []string{"accept", "start", "complete"} {
		status, body = call(t, app, "PUT", fmt.Sprintf("/professional/booking/%s/%d", step, bookingID), proToken, nil)
		require.Equal(t, 200, status, "%s: %v", step, body)
	}
	status, body = call(t, app, "PUT", fmt.Sprintf("/professional/booking/start/%d", bookingID), proToken, nil)
	assert.Equal(t, 409, status)
	assert.Equal(t, "conflict", body["error"])

	status, body = call(t, app, "GET", "/customer/bookings", custToken, nil)
	require.Equal(t, 200, status)
	history := body["bookings"].([]interface{})
	require.Len(t, history, 1)
	first := history[0].(map[string]interface{})
	assert.Equal(t, "completed", first["status"])
	assert.Equal(t, "Meera Pro", first["professional_name"])
	assert.Equal(t, "pro@example.com", first["professional_email"])
	assert.NotNil(t, first["date_of_completion"])

	status, _ = call(t, app, "POST", fmt.Sprintf("/customer/booking/review/%d", bookingID), custToken, fiber.Map{"rating": 9})
	assert.Equal(t, 400, status)
	status, _ = call(t, app, "POST", fmt.Sprintf("/customer/booking/review/%d", bookingID), custToken, fiber.Map{"rating": 4, "review_text": "quick"})
	require.Equal(t, 201, status)
	status, _ = call(t, app, "POST", fmt.Sprintf("/customer/booking/review/%d", bookingID), custToken, fiber.Map{"rating": 4})
	assert.Equal(t, 409, status)

	status, body = call(t, app, "GET", "/professional/reviews", proToken, nil)
	require.Equal(t, 200, status)
	assert.Len(t, body["reviews"], 1)

	status, body = call(t, app, "GET", "/me", custToken, nil)
	require.Equal(t, 200, status)
	assert.Equal(t, "cust@example.com", body["account"].(map[string]interface{})["email"])
	assert.NotNil(t, body["customer"])
}

func TestAccessControl(t *testing.T) {
	app := newTestApp(t)
	status, _ := call(t, app, "POST", "/register/customer", "", fiber.Map{
		"email": "cust@example.com", "password": "cust-pw", "fullname": "Asha",
		"address": "12 MG Road", "pincode": "560001",
	})
	require.Equal(t, 201, status)
	custToken := login(t, app, "cust@example.com", "cust-pw")
	adminToken := login(t, app, "admin@example.com", "admin-pw")

	status, body := call(t, app, "GET", "/admin/service/all", "", nil)
	assert.Equal(t, 401, status)
	assert.Equal(t, "unauthenticated", body["error"])

	status, _ = call(t, app, "GET", "/admin/service/all", "not-a-token", nil)
	assert.Equal(t, 401, status)

	status, body = call(t, app, "GET", "/admin/service/all", custToken, nil)
	assert.Equal(t, 403, status)
	assert.Equal(t, "insufficient role", body["message"])

	status, _ = call(t, app, "GET", "/customer/bookings", adminToken, nil)
	assert.Equal(t, 403, status)

	status, body = call(t, app, "GET", "/customer/bookings", custToken, nil)
	require.Equal(t, 200, status)
	assert.Empty(t, body["bookings"])

	// blocking takes effect on the next request, not at token expiry
	status, body = call(t, app, "GET", "/admin/customer/details", adminToken, nil)
	require.Equal(t, 200, status)
	customerID := int(body["customers"].([]interface{})[0].(map[string]interface{})["customer_id"].(float64))

	status, _ = call(t, app, "PUT", fmt.Sprintf("/admin/customer/block_unblock/%d", customerID), adminToken, fiber.Map{"is_active": false})
	require.Equal(t, 200, status)

	status, body = call(t, app, "GET", "/customer/bookings", custToken, nil)
	assert.Equal(t, 403, status)
	assert.Equal(t, "customer account is blocked", body["message"])

	status, _ = call(t, app, "POST", "/login", "", fiber.Map{"email": "cust@example.com", "password": "cust-pw"})
	assert.Equal(t, 403, status)
	status, _ = call(t, app, "POST", "/login", "", fiber.Map{"email": "cust@example.com", "password": "wrong"})
	assert.Equal(t, 401, status)

	status, _ = call(t, app, "PUT", "/admin/customer/block_unblock/999", adminToken, fiber.Map{"is_active": true})
	assert.Equal(t, 404, status)
}

func TestRegistrationErrors(t *testing.T) {
	app := newTestApp(t)

	status, body := call(t, app, "POST", "/register/customer", "", fiber.Map{"email": "x@example.com"})
	assert.Equal(t, 400, status)
	assert.Equal(t, "validation_error", body["error"])

	customer := fiber.Map{
		"email": "dup@example.com", "password": "pw", "fullname": "Dup",
		"address": "1 Road", "pincode": "560001",
	}
	status, _ = call(t, app, "POST", "/register/customer", "", customer)
	require.Equal(t, 201, status)
	status, body = call(t, app, "POST", "/register/customer", "", customer)
	assert.Equal(t, 409, status)
	assert.Equal(t, "email already registered", body["message"])

	status, _ = registerProfessional(t, app, "dup@example.com")
	assert.Equal(t, 409, status)
}
