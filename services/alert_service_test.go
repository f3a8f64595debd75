package services

import (
	"errors"
	"testing"

	"github.com/dparra0/alerta-escolar-server/apperr"
	"github.com/dparra0/alerta-escolar-server/models"
)

func TestCreateAlertOutOfRange(t *testing.T) {
	db := newTestDB(t)
	ana := registerUser(t, db, "ana@colegio.edu.co")
	svc := NewAlertService(db)

	tests := []struct {
		name  string
		lat   float64
		lng   float64
		field string
	}{
		{"latitud alta", 95, -74.05, "latitude"},
		{"latitud baja", -90.5, -74.05, "latitude"},
		{"longitud alta", 4.65, 181, "longitude"},
		{"longitud baja", 4.65, -180.2, "longitude"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(CreateAlertInput{Latitude: tt.lat, Longitude: tt.lng, UserID: ana.ID})
			var verr *apperr.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("esperaba ValidationError, obtuve %v", err)
			}
			found := false
			for _, f := range verr.Fields {
				if f.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Fatalf("el error no señala el campo %s: %+v", tt.field, verr.Fields)
			}
		})
	}

	// Ningún rechazo dejó fila persistida.
	var count int64
	db.Model(&models.PanicAlert{}).Count(&count)
	if count != 0 {
		t.Fatalf("quedaron %d alertas persistidas tras los rechazos", count)
	}
}

func TestCreateAlertUnknownUser(t *testing.T) {
	db := newTestDB(t)
	_, err := NewAlertService(db).Create(CreateAlertInput{Latitude: 4.65, Longitude: -74.05, UserID: 123})
	var nf *apperr.NotFoundError
	if !errors.As(err, &nf) || nf.Kind != "Usuario" {
		t.Fatalf("esperaba NotFoundError de Usuario, obtuve %v", err)
	}
}

func TestCreateAlertPersistsWithUser(t *testing.T) {
	db := newTestDB(t)
	ana := registerUser(t, db, "ana@colegio.edu.co")

	alert, err := NewAlertService(db).Create(CreateAlertInput{Latitude: 4.65, Longitude: -74.05, UserID: ana.ID})
	if err != nil {
		t.Fatalf("Create falló: %v", err)
	}
	if alert.Latitude != 4.65 || alert.Longitude != -74.05 {
		t.Fatalf("coordenadas alteradas: %+v", alert)
	}
	if alert.Timestamp.IsZero() {
		t.Fatal("el servidor no asignó timestamp")
	}
	if alert.User == nil || alert.User.ID != ana.ID {
		t.Fatalf("la alerta no trae la relación de usuario: %+v", alert.User)
	}
}

func TestAlertListingsAndUpdate(t *testing.T) {
	db := newTestDB(t)
	ana := registerUser(t, db, "ana@colegio.edu.co")
	bruno := registerUser(t, db, "bruno@colegio.edu.co")
	svc := NewAlertService(db)

	if _, err := svc.Create(CreateAlertInput{Latitude: 4.65, Longitude: -74.05, UserID: ana.ID}); err != nil {
		t.Fatalf("Create falló: %v", err)
	}
	second, err := svc.Create(CreateAlertInput{Latitude: 4.70, Longitude: -74.10, UserID: bruno.ID})
	if err != nil {
		t.Fatalf("Create falló: %v", err)
	}

	all, err := svc.List()
	if err != nil || len(all) != 2 {
		t.Fatalf("List: %d alertas, err=%v", len(all), err)
	}
	deAna, err := svc.ListForUser(ana.ID)
	if err != nil || len(deAna) != 1 {
		t.Fatalf("ListForUser: %d alertas, err=%v", len(deAna), err)
	}

	// El patch revalida los rangos sobre el par resultante.
	badLat := 100.0
	if _, err := svc.Update(second.ID, UpdateAlertInput{Latitude: &badLat}); !apperr.IsValidation(err) {
		t.Fatalf("esperaba ValidationError en el patch, obtuve %v", err)
	}
	newLat := 4.71
	updated, err := svc.Update(second.ID, UpdateAlertInput{Latitude: &newLat})
	if err != nil || updated.Latitude != 4.71 {
		t.Fatalf("patch válido falló: %+v err=%v", updated, err)
	}

	if err := svc.Delete(second.ID); err != nil {
		t.Fatalf("Delete falló: %v", err)
	}
	if _, err := svc.Get(second.ID); !apperr.IsNotFound(err) {
		t.Fatalf("la alerta sigue existiendo: %v", err)
	}
}
