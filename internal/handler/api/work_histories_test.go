// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateWorkHistoryHandler(t *testing.T) {
	_, h, _ := testSetup(t)

	req := newJSONRequest(t, http.MethodPost, "/api/work-histories",
		`{"period":"2020 - 2024","company":"Acme","role":"Engineer","skills":["Go","SQL"],"description":"Built services.","achievements":["Shipped v1"],"displayOrder":3}`, nil)
	rec := httptest.NewRecorder()
	h.CreateWorkHistory(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	entry := decodeBody(t, rec)["workHistory"].(map[string]any)
	if entry["company"] != "Acme" {
		t.Errorf("company = %v", entry["company"])
	}
	skills := entry["skills"].([]any)
	if len(skills) != 2 || skills[0] != "Go" {
		t.Errorf("skills = %v", skills)
	}
	if entry["displayOrder"].(float64) != 3 {
		t.Errorf("displayOrder = %v", entry["displayOrder"])
	}
}

func TestCreateWorkHistoryEmptySkills(t *testing.T) {
	_, h, _ := testSetup(t)

	req := newJSONRequest(t, http.MethodPost, "/api/work-histories",
		`{"period":"2020","company":"Acme","role":"Engineer","skills":[],"description":"Work."}`, nil)
	rec := httptest.NewRecorder()
	h.CreateWorkHistory(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	fields := fieldErrors(t, decodeBody(t, rec))
	if _, ok := fields["skills"]; !ok {
		t.Errorf("expected field error on skills, got %v", fields)
	}
}

func TestWorkHistoryNegativeDisplayOrder(t *testing.T) {
	db, h, _ := testSetup(t)

	req := newJSONRequest(t, http.MethodPost, "/api/work-histories",
		`{"period":"2020","company":"Acme","role":"Engineer","skills":["Go"],"description":"Work.","displayOrder":-1}`, nil)
	rec := httptest.NewRecorder()
	h.CreateWorkHistory(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("create status = %d, want 422", rec.Code)
	}
	fields := fieldErrors(t, decodeBody(t, rec))
	if _, ok := fields["displayOrder"]; !ok {
		t.Errorf("expected field error on displayOrder, got %v", fields)
	}

	createTestWorkHistory(t, db, "Acme", 1)
	rec = httptest.NewRecorder()
	h.UpdateWorkHistory(rec, newJSONRequest(t, http.MethodPut, "/api/work-histories/1",
		`{"displayOrder":-5}`, map[string]string{"id": "1"}))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("update status = %d, want 422", rec.Code)
	}
}

func TestListWorkHistoriesOrder(t *testing.T) {
	db, h, _ := testSetup(t)
	createTestWorkHistory(t, db, "Second", 2)
	createTestWorkHistory(t, db, "First", 1)

	req := newGetRequest(t, "/api/work-histories", nil)
	rec := httptest.NewRecorder()
	h.ListWorkHistories(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	entries := decodeBody(t, rec)["workHistories"].([]any)
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	first := entries[0].(map[string]any)
	if first["company"] != "First" {
		t.Errorf("first entry = %v, want First (displayOrder ascending)", first["company"])
	}
}

func TestUpdateWorkHistoryUnknownIDLeavesStoreUnchanged(t *testing.T) {
	db, h, _ := testSetup(t)
	createTestWorkHistory(t, db, "Acme", 1)

	req := newJSONRequest(t, http.MethodPut, "/api/work-histories/99",
		`{"company":"Intruder"}`, map[string]string{"id": "99"})
	rec := httptest.NewRecorder()
	h.UpdateWorkHistory(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	listRec := httptest.NewRecorder()
	h.ListWorkHistories(listRec, newGetRequest(t, "/api/work-histories", nil))
	entries := decodeBody(t, listRec)["workHistories"].([]any)
	if len(entries) != 1 {
		t.Fatalf("len = %d, want 1", len(entries))
	}
	if entries[0].(map[string]any)["company"] != "Acme" {
		t.Errorf("store changed by failed update: %v", entries[0])
	}
}

func TestUpdateWorkHistoryPartialMerge(t *testing.T) {
	db, h, _ := testSetup(t)
	id := createTestWorkHistory(t, db, "Acme", 1)

	req := newJSONRequest(t, http.MethodPut, "/api/work-histories/1",
		`{"role":"Staff Engineer"}`, map[string]string{"id": "1"})
	rec := httptest.NewRecorder()
	h.UpdateWorkHistory(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	entry := decodeBody(t, rec)["workHistory"].(map[string]any)
	if int64(entry["id"].(float64)) != id {
		t.Errorf("id = %v", entry["id"])
	}
	if entry["role"] != "Staff Engineer" {
		t.Errorf("role = %v", entry["role"])
	}
	if entry["company"] != "Acme" {
		t.Errorf("company nulled out: %v", entry["company"])
	}
	if skills := entry["skills"].([]any); len(skills) != 1 {
		t.Errorf("skills nulled out: %v", skills)
	}
}

func TestDeleteWorkHistoryHandler(t *testing.T) {
	db, h, _ := testSetup(t)
	createTestWorkHistory(t, db, "Acme", 1)

	req := newDeleteRequest(t, "/api/work-histories/1", map[string]string{"id": "1"})
	rec := httptest.NewRecorder()
	h.DeleteWorkHistory(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	// Second delete reports NotFound
	rec = httptest.NewRecorder()
	h.DeleteWorkHistory(rec, newDeleteRequest(t, "/api/work-histories/1", map[string]string{"id": "1"}))
	if rec.Code != http.StatusNotFound {
		t.Errorf("repeat delete status = %d, want 404", rec.Code)
	}
}
