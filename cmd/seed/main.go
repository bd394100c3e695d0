package main

import (
	"context"
	"errors"
	"log"

	"formgate/internal/config"
	"formgate/internal/database"
	"formgate/internal/domain/field"
	"formgate/internal/domain/form"
)

// Seeds the default debtor-contact form used as a starting template.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	svc := form.NewService(form.NewRepository(db))
	ctx := context.Background()

	if _, err := svc.GetByRef(ctx, "contacto-deudores"); err == nil {
		log.Println("form contacto-deudores already exists, nothing to do")
		return
	} else if !errors.Is(err, form.ErrFormNotFound) {
		log.Fatalf("failed to check existing form: %v", err)
	}

	created, err := svc.Create(ctx, &form.CreateFormRequest{
		Name:        "Contacto Deudores",
		Slug:        "contacto-deudores",
		Description: "Formulario de contacto para evaluación de deudas",
		Fields: []field.Spec{
			{Type: field.TypeText, Name: "nombre", Label: "Nombre completo", Required: true},
			{Type: field.TypeRut, Name: "rut", Label: "RUT", Placeholder: "12.345.678-9", Required: true},
			{Type: field.TypeEmail, Name: "email", Label: "Correo electrónico", Required: true},
			{Type: field.TypeTel, Name: "telefono", Label: "Teléfono", Placeholder: "+56 9 1234 5678", Required: true},
			{Type: field.TypeNumber, Name: "monto_deuda", Label: "Monto total de deuda", Required: true},
			{Type: field.TypeSelect, Name: "tipo_deuda", Label: "Tipo de deuda", Options: []field.Option{
				{Value: "bancaria", Label: "Bancaria"},
				{Value: "casa_comercial", Label: "Casa comercial"},
				{Value: "tributaria", Label: "Tributaria"},
				{Value: "otra", Label: "Otra"},
			}},
			{Type: field.TypeTextarea, Name: "comentario", Label: "Comentarios", Rows: 4},
		},
	})
	if err != nil {
		log.Fatalf("failed to seed form: %v", err)
	}

	log.Printf("seeded form %q (id=%d, shortcode=%s)", created.Name, created.ID, created.Shortcode())
}
