package main

import (
	"net/http"
	"os"

	"github.com/CampanaDigital/api-personas/internal/auth"
	"github.com/CampanaDigital/api-personas/internal/authext"
	"github.com/CampanaDigital/api-personas/internal/coordinador"
	"github.com/CampanaDigital/api-personas/internal/importacion"
	"github.com/CampanaDigital/api-personas/internal/militante"
	"github.com/CampanaDigital/api-personas/internal/notificacion"
	"github.com/CampanaDigital/api-personas/internal/perfil"
	"github.com/CampanaDigital/api-personas/internal/persona"
	"github.com/CampanaDigital/api-personas/internal/utils/db"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	database, err := db.GetDB()
	if err != nil {
		log.WithError(err).Fatal("error al conectar a la base de datos")
	}

	// AutoMigrate para todos los modelos
	if err := database.AutoMigrate(
		&persona.Persona{},
		&perfil.Perfil{},
		&coordinador.Coordinador{},
		&militante.Militante{},
	); err != nil {
		log.WithError(err).Fatal("error en el AutoMigrate")
	}

	// Cliente del servicio de autenticación externo: se construye una
	// vez aquí y se inyecta; su ciclo de vida pertenece al arranque.
	authCliente := authext.NewClienteHTTP(
		os.Getenv("AUTH_ADMIN_URL"),
		os.Getenv("AUTH_SERVICE_KEY"),
		log,
	)

	bus := notificacion.NewBus(log)
	if webhookURL := os.Getenv("WEBHOOK_IMPORTACION_URL"); webhookURL != "" {
		bus.Suscribir(notificacion.SuscriptorWebhook(webhookURL, log))
	}

	// Handlers
	personaHandler := persona.NewHandler(database, log)
	coordinadorHandler := coordinador.NewHandler(database, authCliente, log)
	militanteHandler := militante.NewHandler(database, log)
	perfilHandler := perfil.NewHandler(database)
	importacionHandler := importacion.NewHandler(importacion.NewAlmacenPersonas(database), bus, log)

	// Router
	r := mux.NewRouter()
	r.Use(auth.Recuperacion)

	// Login
	r.HandleFunc("/login", coordinadorHandler.Login).Methods("POST")

	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacion)

	// Rutas de personas
	api.HandleFunc("/personas", personaHandler.CrearPersona).Methods("POST")
	api.HandleFunc("/personas", personaHandler.ListarPersonas).Methods("GET")
	api.HandleFunc("/personas/{id}", personaHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/personas/{id}", personaHandler.ActualizarPersona).Methods("PUT")
	api.HandleFunc("/personas/{id}", personaHandler.EliminarPersona).Methods("DELETE")

	// Rutas de coordinadores
	api.HandleFunc("/coordinadores", coordinadorHandler.CrearCoordinador).Methods("POST")
	api.HandleFunc("/coordinadores", coordinadorHandler.ListarCoordinadores).Methods("GET")
	api.HandleFunc("/coordinadores/{id}", coordinadorHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/coordinadores/{id}", coordinadorHandler.ActualizarCoordinador).Methods("PUT")
	api.HandleFunc("/coordinadores/{id}", coordinadorHandler.EliminarCoordinador).Methods("DELETE")

	// Rutas de militantes
	api.HandleFunc("/militantes", militanteHandler.CrearMilitante).Methods("POST")
	api.HandleFunc("/militantes", militanteHandler.ListarMilitantes).Methods("GET")
	api.HandleFunc("/militantes/sincronizar", militanteHandler.SincronizarCuotas).Methods("POST")
	api.HandleFunc("/militantes/{id}", militanteHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/militantes/{id}", militanteHandler.ActualizarMilitante).Methods("PUT")
	api.HandleFunc("/militantes/{id}", militanteHandler.EliminarMilitante).Methods("DELETE")

	// Rutas de perfiles (sólo administradores)
	perfiles := api.NewRoute().Subrouter()
	perfiles.Use(auth.RequireAdmin)
	perfiles.HandleFunc("/perfiles", perfilHandler.CrearPerfil).Methods("POST")
	perfiles.HandleFunc("/perfiles", perfilHandler.ListarPerfiles).Methods("GET")
	perfiles.HandleFunc("/perfiles/{id}", perfilHandler.BuscarPorID).Methods("GET")
	perfiles.HandleFunc("/perfiles/{id}", perfilHandler.EliminarPerfil).Methods("DELETE")

	// Rutas de importación (requieren el permiso de importar)
	importaciones := api.NewRoute().Subrouter()
	importaciones.Use(perfil.RequirePermiso(database, perfil.PermisoImportar))
	importaciones.HandleFunc("/importaciones", importacionHandler.CargarArchivo).Methods("POST")
	importaciones.HandleFunc("/importaciones/{id}/filas/{indice}", importacionHandler.EditarFila).Methods("PATCH")
	importaciones.HandleFunc("/importaciones/{id}/filas/{indice}/omitir", importacionHandler.OmitirFila).Methods("POST")
	importaciones.HandleFunc("/importaciones/{id}/omitir-invalidas", importacionHandler.OmitirInvalidas).Methods("POST")
	importaciones.HandleFunc("/importaciones/{id}/confirmar", importacionHandler.Confirmar).Methods("POST")
	importaciones.HandleFunc("/importaciones/{id}/errores.csv", importacionHandler.ExportarErrores).Methods("GET")
	importaciones.HandleFunc("/importaciones/{id}/validacion.csv", importacionHandler.ExportarValidacion).Methods("GET")
	importaciones.HandleFunc("/importaciones/{id}", importacionHandler.Cancelar).Methods("DELETE")

	manejador := cors.New(cors.Options{
		AllowedOrigins:   []string{os.Getenv("CORS_ORIGIN")},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	puerto := os.Getenv("PORT")
	if puerto == "" {
		puerto = "8080"
	}

	log.WithField("puerto", puerto).Info("servidor iniciado")
	log.Fatal(http.ListenAndServe(":"+puerto, manejador))
}
