// Package testhelpers provides an in-memory stand-in for the CRM API that
// tests can point a client at.
package testhelpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// Error categories the fake answers with.
const (
	categoryValidation     = "VALIDATION_ERROR"
	categoryObjectNotFound = "OBJECT_NOT_FOUND"
	categoryInvalidAuth    = "INVALID_AUTHENTICATION"
)

type storedRecord struct {
	ID         string
	Properties map[string]string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Archived   bool
	ArchivedAt *time.Time
}

type associationSpec struct {
	Category string `json:"associationCategory"`
	TypeID   int    `json:"associationTypeId"`
}

// Owner is an owner served by the fake.
type Owner struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	UserID    int64  `json:"userId"`
	Archived  bool   `json:"archived"`
}

// FakeHub is an in-memory CRM. It implements the object, batch,
// association and owner endpoints the client calls.
type FakeHub struct {
	Token string

	mu           sync.Mutex
	nextID       int
	records      map[string]map[string]*storedRecord
	associations map[string]map[string][]associationSpec
	owners       []Owner
	requests     []string
	clock        func() time.Time
}

// NewFakeHub returns an empty fake that accepts token.
func NewFakeHub(token string) *FakeHub {
	return &FakeHub{
		Token:        token,
		nextID:       100,
		records:      make(map[string]map[string]*storedRecord),
		associations: make(map[string]map[string][]associationSpec),
		clock:        func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) },
	}
}

// Start serves the fake on a test server closed with the test.
func (f *FakeHub) Start(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(f.Handler())
	t.Cleanup(server.Close)

	return server
}

// Handler returns the routed handler.
func (f *FakeHub) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /crm/v3/objects/{objectType}", f.list)
	mux.HandleFunc("POST /crm/v3/objects/{objectType}", f.create)
	mux.HandleFunc("GET /crm/v3/objects/{objectType}/{objectId}", f.read)
	mux.HandleFunc("PATCH /crm/v3/objects/{objectType}/{objectId}", f.update)
	mux.HandleFunc("DELETE /crm/v3/objects/{objectType}/{objectId}", f.archive)
	mux.HandleFunc("POST /crm/v3/objects/{objectType}/batch/read", f.batchRead)
	mux.HandleFunc("PATCH /crm/v3/objects/{objectType}/batch/update", f.batchUpdate)
	mux.HandleFunc("DELETE /crm/v3/objects/{objectType}/batch/archive", f.batchArchive)
	mux.HandleFunc("POST /crm/v4/objects/{objectType}", f.createV4)
	mux.HandleFunc("GET /crm/v4/objects/{objectType}/{objectId}/associations/{toObjectType}", f.listAssociations)
	mux.HandleFunc("PUT /crm/v4/objects/{objectType}/{objectId}/associations/{toObjectType}/{toObjectId}", f.createAssociation)
	mux.HandleFunc("DELETE /crm/v4/objects/{objectType}/{objectId}/associations/{toObjectType}/{toObjectId}", f.deleteAssociation)
	mux.HandleFunc("GET /crm/v3/owners", f.listOwners)
	mux.HandleFunc("GET /crm/v3/owners/{ownerId}", f.readOwner)

	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		f.mu.Lock()
		f.requests = append(f.requests, request.Method+" "+request.URL.RequestURI())
		f.mu.Unlock()

		if request.Header.Get("Authorization") != "Bearer "+f.Token {
			writeError(writer, http.StatusUnauthorized, categoryInvalidAuth, "Authentication credentials not found.", nil)

			return
		}

		mux.ServeHTTP(writer, request)
	})
}

// Requests returns "METHOD /path?query" for every request received.
func (f *FakeHub) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return slices.Clone(f.requests)
}

// AddOwner seeds an owner.
func (f *FakeHub) AddOwner(owner Owner) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.owners = append(f.owners, owner)
}

// Seed stores a record with the given properties and returns its id.
func (f *FakeHub) Seed(objectType string, properties map[string]string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.insert(objectType, properties).ID
}

// Properties returns a stored record's properties.
func (f *FakeHub) Properties(objectType, id string) (map[string]string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, ok := f.records[objectType][id]
	if !ok {
		return nil, false
	}

	return record.Properties, true
}

// IsArchived reports whether a stored record was archived.
func (f *FakeHub) IsArchived(objectType, id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, ok := f.records[objectType][id]

	return ok && record.Archived
}

func (f *FakeHub) insert(objectType string, properties map[string]string) *storedRecord {
	f.nextID++
	now := f.clock()

	if properties == nil {
		properties = map[string]string{}
	}

	record := &storedRecord{
		ID:         strconv.Itoa(f.nextID),
		Properties: properties,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if f.records[objectType] == nil {
		f.records[objectType] = make(map[string]*storedRecord)
	}

	f.records[objectType][record.ID] = record

	return record
}

func (f *FakeHub) sortedRecords(objectType string, archived bool) []*storedRecord {
	records := make([]*storedRecord, 0, len(f.records[objectType]))

	for _, record := range f.records[objectType] {
		if record.Archived == archived {
			records = append(records, record)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		left, _ := strconv.Atoi(records[i].ID)
		right, _ := strconv.Atoi(records[j].ID)

		return left < right
	})

	return records
}

func associationKey(objectType, id, toObjectType string) string {
	return objectType + "/" + id + "/" + toObjectType
}

func (f *FakeHub) render(objectType string, record *storedRecord, properties, associations []string) map[string]interface{} {
	props := record.Properties
	if len(properties) > 0 {
		props = make(map[string]string, len(properties))

		for _, name := range properties {
			if value, ok := record.Properties[name]; ok {
				props[name] = value
			}
		}
	}

	out := map[string]interface{}{
		"id":         record.ID,
		"properties": props,
		"createdAt":  record.CreatedAt,
		"updatedAt":  record.UpdatedAt,
		"archived":   record.Archived,
	}

	if record.ArchivedAt != nil {
		out["archivedAt"] = record.ArchivedAt
	}

	if len(associations) > 0 {
		embedded := make(map[string]interface{})

		for _, toObjectType := range associations {
			links := f.associations[associationKey(objectType, record.ID, toObjectType)]
			if len(links) == 0 {
				continue
			}

			results := make([]map[string]string, 0, len(links))
			for _, toID := range sortedKeys(links) {
				results = append(results, map[string]string{"id": toID, "type": singular(objectType) + "_to_" + singular(toObjectType)})
			}

			embedded[toObjectType] = map[string]interface{}{"results": results}
		}

		if len(embedded) > 0 {
			out["associations"] = embedded
		}
	}

	return out
}

func (f *FakeHub) list(writer http.ResponseWriter, request *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	query := request.URL.Query()
	objectType := request.PathValue("objectType")
	records := f.sortedRecords(objectType, query.Get("archived") == "true")

	limit := 10
	if raw := query.Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	start, _ := strconv.Atoi(query.Get("after"))
	start = min(start, len(records))
	end := min(start+limit, len(records))

	results := make([]interface{}, 0, end-start)
	for _, record := range records[start:end] {
		results = append(results, f.render(objectType, record, splitList(query.Get("properties")), splitList(query.Get("associations"))))
	}

	response := map[string]interface{}{"results": results}
	if end < len(records) {
		response["paging"] = map[string]interface{}{
			"next": map[string]string{"after": strconv.Itoa(end), "link": "?after=" + strconv.Itoa(end)},
		}
	}

	writeJSON(writer, http.StatusOK, response)
}

type createInput struct {
	Properties   map[string]string `json:"properties"`
	Associations []struct {
		To struct {
			ID string `json:"id"`
		} `json:"to"`
		Types []associationSpec `json:"types"`
	} `json:"associations"`
}

func (f *FakeHub) createOne(objectType string, input createInput) map[string]interface{} {
	record := f.insert(objectType, input.Properties)

	for _, association := range input.Associations {
		toObjectType := associatedKind(association.Types)
		f.link(objectType, record.ID, toObjectType, association.To.ID, association.Types)
	}

	return f.render(objectType, record, nil, nil)
}

func (f *FakeHub) create(writer http.ResponseWriter, request *http.Request) {
	var input createInput

	if !decodeBody(writer, request, &input) {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	writeJSON(writer, http.StatusCreated, f.createOne(request.PathValue("objectType"), input))
}

// createV4 serves both a single create ({properties, associations}) and a
// batch create ({inputs}).
func (f *FakeHub) createV4(writer http.ResponseWriter, request *http.Request) {
	var body struct {
		createInput

		Inputs []createInput `json:"inputs"`
	}

	if !decodeBody(writer, request, &body) {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	objectType := request.PathValue("objectType")

	if body.Inputs == nil {
		writeJSON(writer, http.StatusCreated, f.createOne(objectType, body.createInput))

		return
	}

	results := make([]interface{}, 0, len(body.Inputs))
	for _, input := range body.Inputs {
		results = append(results, f.createOne(objectType, input))
	}

	writeJSON(writer, http.StatusCreated, f.batchResponse(results, nil))
}

func (f *FakeHub) find(writer http.ResponseWriter, objectType, id string) (*storedRecord, bool) {
	record, ok := f.records[objectType][id]
	if !ok {
		writeError(writer, http.StatusNotFound, categoryObjectNotFound, "Object not found.  objectId are usually numeric.", nil)

		return nil, false
	}

	return record, true
}

func (f *FakeHub) read(writer http.ResponseWriter, request *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	objectType := request.PathValue("objectType")
	query := request.URL.Query()

	record, ok := f.find(writer, objectType, request.PathValue("objectId"))
	if !ok {
		return
	}

	if record.Archived && query.Get("archived") != "true" {
		writeError(writer, http.StatusNotFound, categoryObjectNotFound, "Object not found.", nil)

		return
	}

	writeJSON(writer, http.StatusOK, f.render(objectType, record, splitList(query.Get("properties")), splitList(query.Get("associations"))))
}

func (f *FakeHub) update(writer http.ResponseWriter, request *http.Request) {
	var input createInput

	if !decodeBody(writer, request, &input) {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	objectType := request.PathValue("objectType")

	record, ok := f.find(writer, objectType, request.PathValue("objectId"))
	if !ok {
		return
	}

	f.apply(record, input.Properties)

	writeJSON(writer, http.StatusOK, f.render(objectType, record, nil, nil))
}

func (f *FakeHub) apply(record *storedRecord, properties map[string]string) {
	for name, value := range properties {
		record.Properties[name] = value
	}

	record.UpdatedAt = f.clock()
}

func (f *FakeHub) archive(writer http.ResponseWriter, request *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if record, ok := f.records[request.PathValue("objectType")][request.PathValue("objectId")]; ok {
		f.markArchived(record)
	}

	writer.WriteHeader(http.StatusNoContent)
}

func (f *FakeHub) markArchived(record *storedRecord) {
	now := f.clock()
	record.Archived = true
	record.ArchivedAt = &now
}

type idInput struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
}

func (f *FakeHub) batchRead(writer http.ResponseWriter, request *http.Request) {
	var body struct {
		Properties json.RawMessage `json:"properties"`
		Archived   bool            `json:"archived"`
		Inputs     []idInput       `json:"inputs"`
	}

	if !decodeBody(writer, request, &body) {
		return
	}

	var names []string

	_ = json.Unmarshal(body.Properties, &names)

	f.mu.Lock()
	defer f.mu.Unlock()

	objectType := request.PathValue("objectType")
	results := make([]interface{}, 0, len(body.Inputs))

	var errs []map[string]interface{}

	for _, input := range body.Inputs {
		record, ok := f.records[objectType][input.ID]
		if !ok || record.Archived != body.Archived {
			errs = append(errs, missingError(input.ID))

			continue
		}

		results = append(results, f.render(objectType, record, names, nil))
	}

	f.writeBatch(writer, results, errs)
}

func (f *FakeHub) batchUpdate(writer http.ResponseWriter, request *http.Request) {
	var body struct {
		Inputs []idInput `json:"inputs"`
	}

	if !decodeBody(writer, request, &body) {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	objectType := request.PathValue("objectType")
	results := make([]interface{}, 0, len(body.Inputs))

	var errs []map[string]interface{}

	for _, input := range body.Inputs {
		record, ok := f.records[objectType][input.ID]
		if !ok {
			errs = append(errs, missingError(input.ID))

			continue
		}

		f.apply(record, input.Properties)
		results = append(results, f.render(objectType, record, nil, nil))
	}

	f.writeBatch(writer, results, errs)
}

func (f *FakeHub) batchArchive(writer http.ResponseWriter, request *http.Request) {
	var body struct {
		Inputs []idInput `json:"inputs"`
	}

	if !decodeBody(writer, request, &body) {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, input := range body.Inputs {
		if record, ok := f.records[request.PathValue("objectType")][input.ID]; ok {
			f.markArchived(record)
		}
	}

	writer.WriteHeader(http.StatusNoContent)
}

func (f *FakeHub) batchResponse(results []interface{}, errs []map[string]interface{}) map[string]interface{} {
	now := f.clock()

	response := map[string]interface{}{
		"status":      "COMPLETE",
		"results":     results,
		"startedAt":   now,
		"completedAt": now,
	}

	if len(errs) > 0 {
		response["numErrors"] = len(errs)
		response["errors"] = errs
	}

	return response
}

func (f *FakeHub) writeBatch(writer http.ResponseWriter, results []interface{}, errs []map[string]interface{}) {
	status := http.StatusOK
	if len(errs) > 0 {
		status = http.StatusMultiStatus
	}

	writeJSON(writer, status, f.batchResponse(results, errs))
}

func missingError(id string) map[string]interface{} {
	return map[string]interface{}{
		"status":   "error",
		"category": categoryObjectNotFound,
		"message":  "Could not get some objects, they may be deleted or not exist.",
		"context":  map[string][]string{"ids": {id}},
	}
}

func (f *FakeHub) link(objectType, id, toObjectType, toID string, specs []associationSpec) {
	forward := associationKey(objectType, id, toObjectType)
	if f.associations[forward] == nil {
		f.associations[forward] = make(map[string][]associationSpec)
	}

	f.associations[forward][toID] = append(f.associations[forward][toID], specs...)

	reverse := associationKey(toObjectType, toID, objectType)
	if f.associations[reverse] == nil {
		f.associations[reverse] = make(map[string][]associationSpec)
	}

	f.associations[reverse][id] = append(f.associations[reverse][id], specs...)
}

func (f *FakeHub) listAssociations(writer http.ResponseWriter, request *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	links := f.associations[associationKey(request.PathValue("objectType"), request.PathValue("objectId"), request.PathValue("toObjectType"))]

	results := make([]interface{}, 0, len(links))

	for _, toID := range sortedKeys(links) {
		types := make([]map[string]interface{}, 0, len(links[toID]))
		for _, spec := range links[toID] {
			types = append(types, map[string]interface{}{"category": spec.Category, "typeId": spec.TypeID, "label": nil})
		}

		numericID, err := strconv.ParseInt(toID, 10, 64)
		if err != nil {
			results = append(results, map[string]interface{}{"toObjectId": toID, "associationTypes": types})

			continue
		}

		results = append(results, map[string]interface{}{"toObjectId": numericID, "associationTypes": types})
	}

	writeJSON(writer, http.StatusOK, map[string]interface{}{"results": results})
}

func (f *FakeHub) createAssociation(writer http.ResponseWriter, request *http.Request) {
	var specs []associationSpec

	if !decodeBody(writer, request, &specs) {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	objectType := request.PathValue("objectType")
	id := request.PathValue("objectId")
	toObjectType := request.PathValue("toObjectType")
	toID := request.PathValue("toObjectId")

	for _, check := range [][2]string{{objectType, id}, {toObjectType, toID}} {
		if _, ok := f.records[check[0]][check[1]]; !ok {
			writeError(writer, http.StatusNotFound, categoryObjectNotFound, fmt.Sprintf("No %s with id %s", check[0], check[1]), nil)

			return
		}
	}

	f.link(objectType, id, toObjectType, toID, specs)

	writeJSON(writer, http.StatusOK, map[string]interface{}{
		"fromObjectTypeId": objectType,
		"fromObjectId":     id,
		"toObjectTypeId":   toObjectType,
		"toObjectId":       toID,
		"labels":           []string{},
	})
}

func (f *FakeHub) deleteAssociation(writer http.ResponseWriter, request *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	objectType := request.PathValue("objectType")
	id := request.PathValue("objectId")
	toObjectType := request.PathValue("toObjectType")
	toID := request.PathValue("toObjectId")

	delete(f.associations[associationKey(objectType, id, toObjectType)], toID)
	delete(f.associations[associationKey(toObjectType, toID, objectType)], id)

	writer.WriteHeader(http.StatusNoContent)
}

func (f *FakeHub) listOwners(writer http.ResponseWriter, request *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	query := request.URL.Query()
	archived := query.Get("archived") == "true"
	email := query.Get("email")

	results := make([]Owner, 0, len(f.owners))

	for _, owner := range f.owners {
		if owner.Archived != archived || (email != "" && owner.Email != email) {
			continue
		}

		results = append(results, owner)
	}

	writeJSON(writer, http.StatusOK, map[string]interface{}{"results": results})
}

func (f *FakeHub) readOwner(writer http.ResponseWriter, request *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	archived := request.URL.Query().Get("archived") == "true"

	for _, owner := range f.owners {
		if owner.ID == request.PathValue("ownerId") && owner.Archived == archived {
			writeJSON(writer, http.StatusOK, owner)

			return
		}
	}

	writeError(writer, http.StatusNotFound, categoryObjectNotFound, "Owner not found", nil)
}

func decodeBody(writer http.ResponseWriter, request *http.Request, out interface{}) bool {
	err := json.NewDecoder(request.Body).Decode(out)
	if err != nil {
		writeError(writer, http.StatusBadRequest, categoryValidation, "Invalid input JSON: "+err.Error(), map[string][]string{"properties": {}})

		return false
	}

	return true
}

func writeJSON(writer http.ResponseWriter, status int, v interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(v)
}

func writeError(writer http.ResponseWriter, status int, category, message string, context map[string][]string) {
	writeJSON(writer, status, map[string]interface{}{
		"status":        "error",
		"message":       message,
		"correlationId": "00000000-0000-0000-0000-000000000000",
		"category":      category,
		"context":       context,
	})
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}

	return strings.Split(raw, ",")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

func singular(objectType string) string {
	if strings.HasSuffix(objectType, "ies") {
		return strings.TrimSuffix(objectType, "ies") + "y"
	}

	return strings.TrimSuffix(objectType, "s")
}

var builtInTargets = map[int]string{
	202: "contacts",
	190: "companies",
	214: "deals",
	228: "tickets",
	279: "companies",
	280: "contacts",
	3:   "contacts",
	4:   "deals",
	341: "companies",
	342: "deals",
	19:  "line_items",
	20:  "deals",
}

func associatedKind(specs []associationSpec) string {
	for _, spec := range specs {
		if kind, ok := builtInTargets[spec.TypeID]; ok {
			return kind
		}
	}

	return "unknown"
}
