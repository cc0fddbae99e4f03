package export

import (
	"fmt"
	"net/http"

	"github.com/KromaEnergia/api-faturamento/internal/models"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

func newSheet(headers []string, rows [][]interface{}) (*excelize.File, error) {
	f := excelize.NewFile()
	if _, err := f.NewSheet(sheetName); err != nil {
		return nil, err
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

// Receivables monta a planilha do cronograma de um cliente
func Receivables(entries []models.ReceivableEntry) (*excelize.File, error) {
	headers := []string{"Mês", "Descrição", "Tipo", "Status", "Valor"}
	rows := make([][]interface{}, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []interface{}{e.Month, e.Description, string(e.Kind), string(e.Status), e.Amount.InexactFloat64()})
	}
	return newSheet(headers, rows)
}

// Snapshots monta a planilha do histórico mensal com o waterfall
func Snapshots(snaps []models.MonthlySnapshot) (*excelize.File, error) {
	headers := []string{"Mês", "MRR", "ARR", "Clientes", "Novo", "Expansão", "Contração", "Churn", "Líquido", "Novos clientes", "Clientes perdidos"}
	rows := make([][]interface{}, 0, len(snaps))
	for _, s := range snaps {
		rows = append(rows, []interface{}{
			s.Month,
			s.TotalMRR.InexactFloat64(),
			s.TotalARR.InexactFloat64(),
			s.ClientCount,
			s.NewMRR.InexactFloat64(),
			s.ExpansionMRR.InexactFloat64(),
			s.ContractionMRR.InexactFloat64(),
			s.ChurnedMRR.InexactFloat64(),
			s.NetNewMRR.InexactFloat64(),
			s.NewClients,
			s.ChurnedClients,
		})
	}
	return newSheet(headers, rows)
}

// Serve escreve a planilha como anexo
func Serve(w http.ResponseWriter, f *excelize.File, filename string) error {
	defer f.Close()
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	return f.Write(w)
}
