package store

// ColumnID is the stable opaque row identifier every ledger carries. Rows are
// addressed by it, never by position in the latest load.
const ColumnID = "ID"

// The five ledgers. Column names are preserved from the original flat files.
var (
	Freelance = Table{
		Name: "horas",
		Columns: []string{
			ColumnID, "Data", "Horas", "Valor_USD", "Cotacao", "Valor_BRL",
			"Semana", "Nota", "Valor_Ajustado_USD", "Valor_Ajustado_BRL", "Pago",
		},
	}

	FamilyIncome = Table{
		Name:    "familia",
		Columns: []string{ColumnID, "Membro", "Tipo", "Valor", "Data"},
	}

	Expenses = Table{
		Name:    "despesas",
		Columns: []string{ColumnID, "Membro", "Categoria", "Valor", "Data"},
	}

	Investments = Table{
		Name:    "investimentos",
		Columns: []string{ColumnID, "Membro", "Tipo", "Valor", "Data", "Rendimento"},
	}

	Loans = Table{
		Name: "emprestimos",
		Columns: []string{
			ColumnID, "Nome", "Tipo", "Valor_Original", "Valor_Com_Juros",
			"Parcelas_Total", "Parcelas_Pagas", "Valor_Parcela",
			"Data_Emprestimo", "Status", "Observacoes",
		},
	}
)

// AllTables lists every ledger, used by backends that prepare storage upfront.
func AllTables() []Table {
	return []Table{Freelance, FamilyIncome, Expenses, Investments, Loans}
}
