// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rental-marketplace/backend/config"
	"github.com/rental-marketplace/backend/internal/domain/entity"
	"github.com/rental-marketplace/backend/internal/infra/dependency"
	"github.com/rental-marketplace/backend/internal/integration/entrypoint/middleware"
	"github.com/rental-marketplace/backend/internal/integration/persistence/model"
	"github.com/rental-marketplace/backend/test/integration/mock"
)

// suite holds the resources shared by every scenario of a run.
type suite struct {
	db       *mock.Db
	redis    *mock.Redis
	timeMock *mock.Time
	server   *httptest.Server
	injector *dependency.Injector
}

var (
	suiteOnce sync.Once
	shared    *suite
)

func startSuite() *suite {
	suiteOnce.Do(func() {
		gin.SetMode(gin.TestMode)

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.Booking.SweepEnabled = true
		cfg.Booking.SweepBatchSize = 10
		cfg.Booking.LockWaitTimeout = 5 * time.Second
		cfg.Booking.LockRetryInterval = 5 * time.Millisecond

		s := &suite{
			db:       mock.NewDb("rental_marketplace", model.AllModels()...),
			redis:    mock.NewRedis(),
			timeMock: mock.NewTime(),
		}

		injector, err := dependency.NewInjector(cfg, s.db.DbConn, s.redis.Client, entity.WithClock(s.timeMock.Now))
		if err != nil {
			panic(fmt.Sprintf("failed to wire dependencies. err: %s", err.Error()))
		}
		s.injector = injector
		s.server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
		shared = s
	})
	return shared
}

// InitializeTestSuite tears the shared server down after the run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.AfterSuite(func() {
		if shared != nil {
			shared.server.Close()
			shared.redis.Close()
		}
	})
}

type testContext struct {
	*suite
	client        *http.Client
	headers       map[string]string
	response      *response
	users         map[string]uuid.UUID
	properties    map[string]uuid.UUID
	lastBookingID uuid.UUID
	concurrent    []int
}

type response struct {
	status int
	body   any
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		suite:  startSuite(),
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^today is "([^"]*)"$`, test.todayIs)

	// Account setup steps
	ctx.Given(`^a guest "([^"]*)" exists$`, test.aGuestExists)
	ctx.Given(`^a host "([^"]*)" exists$`, test.aHostExists)
	ctx.Given(`^I am "([^"]*)"$`, test.iAm)
	ctx.Given(`^I am anonymous$`, test.iAmAnonymous)

	// Listing and booking setup steps
	ctx.Given(`^"([^"]*)" has a published listing "([^"]*)" in "([^"]*)" at (\d+) per night$`, test.hasAPublishedListing)
	ctx.Given(`^"([^"]*)" has a draft listing "([^"]*)" in "([^"]*)" at (\d+) per night$`, test.hasADraftListing)
	ctx.Given(`^"([^"]*)" booked "([^"]*)" from "([^"]*)" to "([^"]*)"$`, test.booked)
	ctx.Given(`^"([^"]*)" confirmed the last booking$`, test.confirmedTheLastBooking)

	// Header steps
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^(\d+) guests request "([^"]*)" from "([^"]*)" to "([^"]*)" at the same time$`, test.guestsRequestAtTheSameTime)
	ctx.When(`^the completion sweep runs$`, test.theCompletionSweepRuns)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)
	ctx.Then(`^(\d+) of the requests should succeed and (\d+) should conflict$`, test.requestsShouldSucceedAndConflict)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.users = make(map[string]uuid.UUID)
	t.properties = make(map[string]uuid.UUID)
	t.lastBookingID = uuid.Nil
	t.concurrent = nil
	t.timeMock.Reset()

	if err := t.db.ClearDB(); err != nil {
		return err
	}
	return t.redis.Clear()
}

func (t *testContext) theAPIServerIsRunning() error {
	if t.server == nil {
		return errors.New("test server is not running")
	}
	return nil
}

func (t *testContext) todayIs(date string) error {
	day, err := time.Parse(time.RFC3339, date)
	if err != nil {
		day, err = time.Parse("2006-01-02", date)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", date, err)
		}
		day = day.Add(9 * time.Hour)
	}
	t.timeMock.SetCurrentTime(day)
	return nil
}

func (t *testContext) aGuestExists(name string) error {
	return t.registerUser(name, false)
}

func (t *testContext) aHostExists(name string) error {
	return t.registerUser(name, true)
}

func (t *testContext) registerUser(name string, asHost bool) error {
	status, body, err := t.call(http.MethodPost, "/api/v1/users", "", map[string]any{
		"email":        strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		"phone_number": "+974 5555 0101",
		"first_name":   name,
		"last_name":    "Tester",
		"as_host":      asHost,
	})
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("failed to register %s: %d %v", name, status, body)
	}
	id, err := uuid.Parse(fmt.Sprint(getFieldValue(body, "id")))
	if err != nil {
		return err
	}
	t.users[name] = id
	return nil
}

func (t *testContext) iAm(name string) error {
	id, ok := t.users[name]
	if !ok {
		return fmt.Errorf("unknown user %q", name)
	}
	t.headers[middleware.UserIDHeader] = id.String()
	return nil
}

func (t *testContext) iAmAnonymous() error {
	delete(t.headers, middleware.UserIDHeader)
	return nil
}

func (t *testContext) hasAPublishedListing(host, title, city string, price int) error {
	return t.createListing(host, title, city, price, true)
}

func (t *testContext) hasADraftListing(host, title, city string, price int) error {
	return t.createListing(host, title, city, price, false)
}

func (t *testContext) createListing(host, title, city string, price int, publish bool) error {
	hostID, ok := t.users[host]
	if !ok {
		return fmt.Errorf("unknown user %q", host)
	}
	status, body, err := t.call(http.MethodPost, "/api/v1/properties", hostID.String(), map[string]any{
		"title":        title,
		"description":  "A bright and quiet place to stay in " + city + ", close to the sea and the old market.",
		"type":         "APARTMENT",
		"address":      map[string]any{"street": "1 Main Street", "city": city, "country": "Qatar"},
		"base_price":   price,
		"cleaning_fee": 20,
		"max_guests":   4,
		"bedrooms":     2,
		"bathrooms":    1,
		"beds":         2,
		"images":       []string{"https://cdn.example.com/listing.jpg"},
	})
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("failed to create listing %s: %d %v", title, status, body)
	}
	id, err := uuid.Parse(fmt.Sprint(getFieldValue(body, "id")))
	if err != nil {
		return err
	}
	t.properties[title] = id

	if publish {
		status, body, err = t.call(http.MethodPost, "/api/v1/properties/"+id.String()+"/publish", hostID.String(), nil)
		if err != nil {
			return err
		}
		if status != http.StatusOK {
			return fmt.Errorf("failed to publish listing %s: %d %v", title, status, body)
		}
	}
	return nil
}

func (t *testContext) bookingPayload(title, start, end string) (map[string]any, error) {
	propertyID, ok := t.properties[title]
	if !ok {
		return nil, fmt.Errorf("unknown listing %q", title)
	}
	return map[string]any{
		"property_id": propertyID.String(),
		"start_date":  start,
		"end_date":    end,
		"guest_count": 2,
	}, nil
}

func (t *testContext) booked(guest, title, start, end string) error {
	guestID, ok := t.users[guest]
	if !ok {
		return fmt.Errorf("unknown user %q", guest)
	}
	payload, err := t.bookingPayload(title, start, end)
	if err != nil {
		return err
	}
	status, body, err := t.call(http.MethodPost, "/api/v1/bookings", guestID.String(), payload)
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("failed to book %s: %d %v", title, status, body)
	}
	t.captureIDs(body)
	return nil
}

func (t *testContext) confirmedTheLastBooking(host string) error {
	hostID, ok := t.users[host]
	if !ok {
		return fmt.Errorf("unknown user %q", host)
	}
	status, body, err := t.call(http.MethodPost, "/api/v1/bookings/"+t.lastBookingID.String()+"/confirm", hostID.String(), nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("failed to confirm booking: %d %v", status, body)
	}
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = t.replacePlaceholders(value)
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) guestsRequestAtTheSameTime(count int, title, startDate, endDate string) error {
	payload, err := t.bookingPayload(title, startDate, endDate)
	if err != nil {
		return err
	}

	guests := make([]uuid.UUID, count)
	for i := range guests {
		name := fmt.Sprintf("Racer %d", i+1)
		if err := t.registerUser(name, false); err != nil {
			return err
		}
		guests[i] = t.users[name]
	}

	statuses := make([]int, count)
	errs := make([]error, count)
	var wg sync.WaitGroup
	ready := make(chan struct{})
	for i, guestID := range guests {
		wg.Add(1)
		go func(i int, guestID uuid.UUID) {
			defer wg.Done()
			<-ready
			statuses[i], _, errs[i] = t.call(http.MethodPost, "/api/v1/bookings", guestID.String(), payload)
		}(i, guestID)
	}
	close(ready)
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return err
	}
	t.concurrent = statuses
	return nil
}

func (t *testContext) theCompletionSweepRuns() error {
	if t.injector.Scheduler == nil {
		return errors.New("completion scheduler is disabled")
	}
	out, err := t.injector.Scheduler.RunOnce(context.Background())
	if err != nil {
		return err
	}
	t.response = &response{
		status: http.StatusOK,
		body:   map[string]any{"completed": float64(out.Completed), "failed": float64(out.Failed)},
	}
	return nil
}

func (t *testContext) replacePlaceholders(content string) string {
	for name, id := range t.users {
		content = strings.ReplaceAll(content, "{{user:"+name+"}}", id.String())
	}
	for title, id := range t.properties {
		content = strings.ReplaceAll(content, "{{property:"+title+"}}", id.String())
	}
	return strings.ReplaceAll(content, "{{booking_id}}", t.lastBookingID.String())
}

func (t *testContext) call(method, path, userID string, payload any) (int, any, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, t.server.URL+path, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}
	return t.do(req)
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, t.server.URL+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	status, responseBody, err := t.do(req)
	if err != nil {
		return err
	}
	t.response = &response{status: status, body: responseBody}
	t.captureIDs(responseBody)
	return nil
}

func (t *testContext) do(req *http.Request) (int, any, error) {
	resp, err := t.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}

	var decoded map[string]any
	if err := json.Unmarshal(bodyBytes, &decoded); err != nil {
		return resp.StatusCode, string(bodyBytes), nil
	}
	return resp.StatusCode, decoded, nil
}

// captureIDs remembers the booking id of booking responses for later {{booking_id}} placeholders.
func (t *testContext) captureIDs(body any) {
	for _, path := range []string{"booking.id", "id"} {
		raw, ok := getFieldValue(body, path).(string)
		if !ok {
			continue
		}
		if getFieldValue(body, strings.TrimSuffix(path, "id")+"guestId") == nil {
			continue
		}
		if id, err := uuid.Parse(raw); err == nil {
			t.lastBookingID = id
			return
		}
	}
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	if err := t.theResponseShouldBeJSON(); err != nil {
		return err
	}
	if _, exists := t.response.body.(map[string]any)[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	if actual := fmt.Sprintf("%v", value); actual != t.replacePlaceholders(expectedValue) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actual)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	items, ok := getFieldValue(t.response.body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, t.response.body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) requestsShouldSucceedAndConflict(succeeded, conflicted int) error {
	var created, conflicts int
	for _, status := range t.concurrent {
		switch status {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		default:
			return fmt.Errorf("unexpected status %d in %v", status, t.concurrent)
		}
	}
	if created != succeeded || conflicts != conflicted {
		return fmt.Errorf("expected %d created and %d conflicts, got %v", succeeded, conflicted, t.concurrent)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	m, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	rows := reflect.New(reflect.SliceOf(reflect.TypeOf(m).Elem()))

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	if err := query.Find(rows.Interface()).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if count := rows.Elem().Len(); count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	var field any = object
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		switch v := field.(type) {
		case map[string]any:
			field = v[currentField]
		case []any:
			i, err := strconv.Atoi(currentField)
			if err != nil || i < 0 || i >= len(v) {
				return nil
			}
			field = v[i]
		default:
			return nil
		}
	}
	return field
}
