package store

import (
	"context"

	"github.com/lfmotta/livrocaixa/internal/models"
)

type seedEntry struct {
	code   string
	parent string
	name   string
	typ    models.CoaType
}

// defaultCoa is the starter chart of accounts for a Brazilian family
// bookkeeping setup. Parents come before children so the hierarchy
// validates on insert.
var defaultCoa = []seedEntry{
	{"1000", "", "Receitas", models.CoaIncome},
	{"1010", "1000", "Salário", models.CoaIncome},
	{"1020", "1000", "Bônus", models.CoaIncome},
	{"1030", "1000", "Aluguéis", models.CoaIncome},
	{"1040", "1000", "Reembolsos", models.CoaIncome},
	{"1050", "1000", "Benefícios", models.CoaIncome},
	{"1060", "1000", "Rendimentos", models.CoaIncome},
	{"1080", "1000", "Outras receitas", models.CoaIncome},

	{"2000", "", "Despesas", models.CoaExpense},
	{"2100", "2000", "Moradia", models.CoaExpense},
	{"2110", "2100", "Condomínio", models.CoaExpense},
	{"2120", "2100", "Manutenção", models.CoaExpense},
	{"2130", "2100", "Utensílios", models.CoaExpense},
	{"2140", "2100", "Limpeza", models.CoaExpense},
	{"2150", "2100", "Decoração e móveis", models.CoaExpense},
	{"2160", "2100", "Financiamento", models.CoaLiability},
	{"2200", "2000", "Contas de consumo", models.CoaExpense},
	{"2210", "2200", "Gás", models.CoaExpense},
	{"2220", "2200", "Telefone e internet", models.CoaExpense},
	{"2230", "2200", "Energia elétrica", models.CoaExpense},
	{"2300", "2000", "Transporte", models.CoaExpense},
	{"2310", "2300", "Combustível", models.CoaExpense},
	{"2320", "2300", "Manutenção do carro", models.CoaExpense},
	{"2340", "2300", "Estacionamento e pedágios", models.CoaExpense},
	{"2350", "2300", "Uber e táxi", models.CoaExpense},
	{"2370", "2300", "Multas", models.CoaExpense},
	{"2390", "2300", "Seguro do carro", models.CoaExpense},
	{"2400", "2000", "Alimentação", models.CoaExpense},
	{"2410", "2400", "Almoço", models.CoaExpense},
	{"2420", "2400", "Jantar e lanches", models.CoaExpense},
	{"2500", "2000", "Educação", models.CoaExpense},
	{"2510", "2500", "Escola", models.CoaExpense},
	{"2520", "2500", "Cursos de idiomas", models.CoaExpense},
	{"2530", "2500", "Livros", models.CoaExpense},
	{"2550", "2500", "Outros cursos", models.CoaExpense},
	{"2600", "2000", "Saúde", models.CoaExpense},
	{"2610", "2600", "Dentista", models.CoaExpense},
	{"2620", "2600", "Médicos", models.CoaExpense},
	{"2630", "2600", "Medicamentos", models.CoaExpense},
	{"2650", "2600", "Plano de saúde", models.CoaExpense},
	{"2700", "2000", "Lazer", models.CoaExpense},
	{"2710", "2700", "Cinema", models.CoaExpense},
	{"2720", "2700", "Streaming", models.CoaExpense},
	{"2740", "2700", "Viagens", models.CoaExpense},
	{"2760", "2700", "Atividades", models.CoaExpense},
	{"2800", "2000", "Cuidados pessoais", models.CoaExpense},
	{"2810", "2800", "Academia", models.CoaExpense},
	{"2820", "2800", "Vestuário", models.CoaExpense},
	{"2830", "2800", "Presentes", models.CoaExpense},
	{"2840", "2800", "Cabeleireiro", models.CoaExpense},

	{"3000", "", "Transferências", models.CoaEquity},
	{"3110", "3000", "Transferências entre contas", models.CoaEquity},
	{"3120", "3000", "Câmbio", models.CoaEquity},

	{"4000", "", "Poupança e investimentos", models.CoaAsset},
	{"4110", "4000", "Resgates", models.CoaLiability},
	{"4210", "4000", "Aplicações", models.CoaAsset},
	{"4220", "4000", "Previdência", models.CoaAsset},

	{"8000", "", "Trabalho", models.CoaExpense},
	{"8100", "8000", "Contabilidade", models.CoaExpense},
	{"8200", "8000", "Aplicativos", models.CoaExpense},

	{"9000", "", "Despesas financeiras", models.CoaExpense},
	{"9200", "9000", "Impostos", models.CoaExpense},
	{"9240", "9200", "IRRF", models.CoaExpense},
	{"9250", "9200", "IOF", models.CoaExpense},
	{"9255", "9200", "INSS", models.CoaExpense},
	{"9260", "9200", "IPVA", models.CoaExpense},
	{"9270", "9200", "IPTU", models.CoaExpense},
	{"9300", "9000", "Tarifas bancárias", models.CoaExpense},

	{"9900", "", "Outros", models.CoaExpense},
	{"9910", "9900", "Despesas reembolsáveis", models.CoaExpense},
	{"9911", "9900", "Outras despesas", models.CoaExpense},
}

// SeedDefaultCoa loads the starter chart of accounts into an empty store.
// A store that already has any COA entry is left untouched, so calling it
// on every startup is safe.
func SeedDefaultCoa(ctx context.Context, s Store) (int, error) {
	existing, err := s.ListCoa(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, e := range defaultCoa {
		_, err := s.CreateCoa(ctx, models.CoaAccount{
			Code:       e.code,
			ParentCode: e.parent,
			Name:       e.name,
			Type:       e.typ,
			IsActive:   true,
		})
		if err != nil {
			return i, err
		}
	}
	return len(defaultCoa), nil
}
