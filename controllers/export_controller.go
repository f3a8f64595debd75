package controllers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/dparra0/alerta-escolar-server/models"
	"github.com/dparra0/alerta-escolar-server/services"
)

// ExportController arma la descarga de respuestas de una encuesta en xlsx
// o csv. Es síncrono: las encuestas de un colegio no justifican una cola.
type ExportController struct {
	Surveys   *services.SurveyService
	Responses *services.ResponseService
	Users     *services.AuthService
}

func NewExportController(surveys *services.SurveyService, responses *services.ResponseService, users *services.AuthService) *ExportController {
	return &ExportController{Surveys: surveys, Responses: responses, Users: users}
}

// Export responde GET /surveys/:id/export?format=xlsx|csv (xlsx por defecto).
func (ctl *ExportController) Export(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", "xlsx"))
	if format != "xlsx" && format != "csv" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "format debe ser xlsx o csv"})
		return
	}

	survey, err := ctl.Surveys.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	responses, err := ctl.Responses.ListForSurvey(id)
	if err != nil {
		respondError(c, err)
		return
	}

	rows, err := ctl.buildRows(survey, responses)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("encuesta_%d_respuestas.%s", survey.ID, format)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if format == "csv" {
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.WriteAll(rows); err != nil {
			respondError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/csv", buf.Bytes())
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			respondError(c, err)
			return
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

// buildRows produce encabezado + una fila por respuesta, con una columna
// por pregunta. Busca cada usuario por id; a escala de colegio alcanza.
func (ctl *ExportController) buildRows(survey *models.Survey, responses []models.SurveyResponse) ([][]string, error) {
	header := []string{"ID", "Usuario", "Email", "Estado", "Enviado"}
	for _, q := range survey.Questions {
		header = append(header, q.Question)
	}

	rows := [][]string{header}
	for _, resp := range responses {
		name, email := "", ""
		if user, err := ctl.Users.GetUser(resp.UserID); err == nil {
			name, email = user.Name, user.Email
		}

		byQuestion := make(map[int]string, len(resp.Answers))
		for _, ans := range resp.Answers {
			byQuestion[ans.Question] = formatAnswer(ans.Answer)
		}

		row := []string{
			strconv.FormatUint(uint64(resp.ID), 10),
			name,
			email,
			resp.Status,
			resp.SubmittedAt.Format(time.RFC3339),
		}
		for _, q := range survey.Questions {
			row = append(row, byQuestion[q.ID])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func formatAnswer(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []interface{}:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, formatAnswer(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(t)
	}
}
