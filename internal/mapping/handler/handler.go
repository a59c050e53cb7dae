package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"tablemap-service/internal/clean"
	"tablemap-service/internal/config"
	"tablemap-service/internal/fileio"
	"tablemap-service/internal/mapping/model"
	mapSvc "tablemap-service/internal/mapping/service"
	"tablemap-service/internal/store"
)

type response struct {
	Result     model.Result `json:"result"`
	Valid      bool         `json:"valid"`
	Issues     []string     `json:"issues,omitempty"`
	Table      *model.Table `json:"table,omitempty"`
	RowsLoaded int64        `json:"rowsLoaded,omitempty"`
}

// MapColumns returns the handler for POST /map: multipart upload of one
// tabular file, mapped against the catalog, validated, optionally projected,
// cleaned and loaded into the warehouse. st may be nil when DATABASE_URL is
// not configured.
func MapColumns(cfg config.Config, logger zerolog.Logger, mapper *mapSvc.Mapper, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		log := logger
		if rid := r.Header.Get("X-Request-ID"); rid != "" {
			log = logger.With().Str("req_id", rid).Logger()
		}

		defer r.Body.Close()
		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "missing file: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()

		headerRow := atoi(r.FormValue("header_row"), 1)
		table, err := fileio.ReadAnyTable(file, header.Filename, headerRow)
		if err != nil {
			http.Error(w, "failed to read table: "+err.Error(), http.StatusBadRequest)
			return
		}

		minConf := toFloat(r.FormValue("min_confidence"), mapSvc.DefaultMinConfidence)
		strict := toBool(r.FormValue("strict"), true)
		project := toBool(r.FormValue("project"), true)
		loadName := r.FormValue("load_table")

		res := mapper.MapColumns(table.Columns, minConf)
		valid, issues := mapSvc.Validate(res, strict)

		resp := response{Result: res, Valid: valid, Issues: issues}

		if project || loadName != "" {
			projected := mapSvc.Project(table, res)
			projected = clean.Apply(projected, clean.Options{
				DateColumns:     splitList(r.FormValue("date_columns")),
				NumericColumns:  splitList(r.FormValue("numeric_columns")),
				DedupeKey:       r.FormValue("dedupe_key"),
				DeriveUnitPrice: toBool(r.FormValue("derive_unit_price"), false),
			})
			if project {
				resp.Table = &projected
			}

			if loadName != "" {
				if st == nil {
					http.Error(w, "warehouse is not configured", http.StatusBadRequest)
					return
				}
				if !valid {
					http.Error(w, "refusing to load an invalid mapping", http.StatusUnprocessableEntity)
					return
				}
				n, err := st.LoadTable(r.Context(), loadName, projected)
				if err != nil {
					log.Error().Err(err).Str("table", loadName).Msg("warehouse load")
					http.Error(w, "warehouse load failed: "+err.Error(), http.StatusBadGateway)
					return
				}
				resp.RowsLoaded = n
			}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			log.Error().Err(err).Msg("write json")
			return
		}

		log.Info().
			Int("columns", len(table.Columns)).
			Int("rows", len(table.Rows)).
			Int("mapped", len(res.Mapped)).
			Int("unmapped", len(res.Unmapped)).
			Strs("missing_required", res.MissingRequired).
			Bool("valid", valid).
			Dur("elapsed", time.Since(start)).
			Msg("map done")
	}
}
