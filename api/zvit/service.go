package zvit

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Quick-coder123/zvit/api"
	"github.com/Quick-coder123/zvit/internal/checksum"
	"github.com/Quick-coder123/zvit/internal/config"
	"github.com/Quick-coder123/zvit/internal/serviceiface"
)

type ZvitService struct {
	config map[string]interface{}
	pool   *pgxpool.Pool
}

func NewZvitService(cfg map[string]interface{}, pool *pgxpool.Pool) serviceiface.Service {
	return &ZvitService{config: cfg, pool: pool}
}

func (s *ZvitService) Name() string {
	return "zvit"
}

func (s *ZvitService) Start() error {
	go StartZvitService(s.pool, config.Int(s.config, "port", config.DefaultZvitPort))
	return nil
}

func (s *ZvitService) Stop() error {
	return nil
}

// NewRouter wires all record-service routes onto a gorilla router. Mutating
// routes sit behind the session middleware; reads stay open to the gateway.
func NewRouter(store *Store) *mux.Router {
	router := mux.NewRouter()
	guard := api.SessionMiddleware()
	uploads := checksum.NewTracker(100)

	router.HandleFunc("/zvit/records", GetRecords(store)).Methods("GET")
	router.Handle("/zvit/records", guard(CreateRecord(store))).Methods("POST")
	router.Handle("/zvit/records/bulk-delete", guard(BulkDeleteRecords(store))).Methods("POST")
	router.Handle("/zvit/records/{id:[0-9]+}", guard(UpdateRecord(store))).Methods("PUT")
	router.Handle("/zvit/records/{id:[0-9]+}", guard(DeleteRecord(store))).Methods("DELETE")

	router.Handle("/zvit/import", guard(ImportRecords(store, uploads))).Methods("POST")
	router.HandleFunc("/zvit/export", ExportRecords(store)).Methods("GET")
	router.HandleFunc("/zvit/template", DownloadTemplate()).Methods("GET")

	router.HandleFunc("/zvit/report/opened", OpenedReport(store)).Methods("GET")
	router.HandleFunc("/zvit/report/activated", ActivationReport(store)).Methods("GET")
	router.HandleFunc("/zvit/report/status", StatusSummary(store)).Methods("GET")

	router.HandleFunc("/zvit/health", Health(store)).Methods("GET")

	return router
}

func StartZvitService(pool *pgxpool.Pool, port int) {
	router := NewRouter(NewStore(pool))
	log.Printf("Zvit Service started on :%d", port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), router); err != nil {
		log.Fatalf("Zvit Service failed: %v", err)
	}
}
