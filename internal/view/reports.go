package view

import (
	"context"

	"go.uber.org/zap"

	"github.com/hcmut-tutoring/tutorhub/internal/models"
	"github.com/hcmut-tutoring/tutorhub/pkg/export"
	apperrors "github.com/hcmut-tutoring/tutorhub/pkg/errors"
)

type reportAPI interface {
	GetReport(ctx context.Context, reportID, token string) (models.Report, error)
	GenerateReport(ctx context.Context, req models.GenerateReportRequest, token string) (models.Report, error)
}

// ReportCenter drives the coordinator's reports page. The backend exposes
// only generate-by-criteria and fetch-by-id, so the view seeds its list by
// opportunistically fetching known ids and grows it as reports are
// generated.
type ReportCenter struct {
	api     reportAPI
	ident   identitySource
	logger  *zap.Logger
	seedIDs []string

	state Loadable[[]models.Report]
}

// ReportCenterParams groups constructor dependencies.
type ReportCenterParams struct {
	API      reportAPI
	Identity identitySource
	Logger   *zap.Logger
	// SeedIDs are report ids probed on load. Lookup misses are expected
	// and swallowed, unlike an explicit fetch-by-id.
	SeedIDs []string
}

// NewReportCenter builds the view.
func NewReportCenter(params ReportCenterParams) *ReportCenter {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportCenter{
		api:     params.API,
		ident:   params.Identity,
		logger:  logger,
		seedIDs: params.SeedIDs,
	}
}

// Load probes the seed ids sequentially. Ids the backend no longer knows
// are skipped without surfacing an error; any other failure fails the view.
func (v *ReportCenter) Load(ctx context.Context) {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			v.state.Clear(gateErr)
		}
		return
	}

	gen := v.state.Begin()

	reports := make([]models.Report, 0, len(v.seedIDs))
	for _, id := range v.seedIDs {
		report, err := v.api.GetReport(ctx, id, snapshot.Token)
		if err != nil {
			if apperrors.IsKind(err, apperrors.KindNotFound) {
				v.logger.Debug("seed report missing", zap.String("reportId", id))
				continue
			}
			v.logger.Warn("unable to load report", zap.String("reportId", id), zap.Error(err))
			v.state.Fail(gen, err)
			return
		}
		reports = append(reports, report)
	}

	v.state.Resolve(gen, reports)
}

// Generate asks the backend for a new report and upserts the result at the
// head of the list. The criteria string is stored exactly as the server
// returns it; render-time parsing never mutates it.
func (v *ReportCenter) Generate(ctx context.Context, req models.GenerateReportRequest) (models.Report, error) {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			return models.Report{}, gateErr
		}
		return models.Report{}, nil
	}
	created, err := v.api.GenerateReport(ctx, req, snapshot.Token)
	if err != nil {
		return models.Report{}, err
	}
	v.state.Set(UpsertHead(v.state.Data(), created, reportID))
	return created, nil
}

// Fetch loads one report by id and upserts it into the list. Unlike seed
// probing, a miss here surfaces to the caller.
func (v *ReportCenter) Fetch(ctx context.Context, id string) (models.Report, error) {
	snapshot, gateErr, ok := gate(v.ident)
	if !ok {
		if gateErr != nil {
			return models.Report{}, gateErr
		}
		return models.Report{}, nil
	}
	report, err := v.api.GetReport(ctx, id, snapshot.Token)
	if err != nil {
		return models.Report{}, err
	}
	v.state.Set(UpsertHead(v.state.Data(), report, reportID))
	return report, nil
}

// State exposes the report list with its phase and error.
func (v *ReportCenter) State() (Phase, []models.Report, error) {
	phase, data, err := v.state.State()
	if err != nil {
		return phase, data, err
	}
	return phase, data, nil
}

// ExportDataset shapes the current list for the CSV/PDF exporters.
func (v *ReportCenter) ExportDataset() export.Dataset {
	reports := v.state.Data()
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, []string{
			r.ReportID,
			string(r.ReportType),
			r.GeneratedBy,
			r.GeneratedDate,
			r.Criteria,
		})
	}
	return export.Dataset{
		Title:   "Generated Reports",
		Headers: []string{"Report ID", "Type", "Generated By", "Date", "Criteria"},
		Rows:    rows,
	}
}

func reportID(r models.Report) string { return r.ReportID }
