package airbase

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormula_Eq(t *testing.T) {
	require.Equal(t, "{Status} = 'New'", Eq("Status", "New").String())
}

func TestFormula_EscapesInjection(t *testing.T) {
	f := Eq("Customer Email", `x' ) , RECORD_ID() , ( '`)
	require.Equal(t, `{Customer Email} = 'x\' ) , RECORD_ID() , ( \''`, f.String())

	f = Eq("Name", `a\'b`)
	require.Equal(t, `{Name} = 'a\\\'b'`, f.String())
}

func TestFormula_SearchIn(t *testing.T) {
	f := SearchIn("ORD-1", "Platform Order Number (from 4Seller)")
	require.Equal(t, "SEARCH('ORD-1', ARRAYJOIN({Platform Order Number (from 4Seller)}, ','))", f.String())

	f = SearchInLower("o'neil", "Recipient Name_f")
	require.Equal(t, `SEARCH('o\'neil', LOWER(ARRAYJOIN({Recipient Name_f}, ',')))`, f.String())
}

func TestFormula_Combinators(t *testing.T) {
	f := And(Eq("A", "1"), Eq("B", "2"))
	require.Equal(t, "AND({A} = '1', {B} = '2')", f.String())

	f = Or(Eq("A", "1"))
	require.Equal(t, "{A} = '1'", f.String())

	f = And()
	require.True(t, f.IsZero())

	// Пустые ветки выпадают из комбинации.
	f = And(Formula{}, Eq("A", "1"), Formula{})
	require.Equal(t, "{A} = '1'", f.String())
}

func TestFormula_IsAfter(t *testing.T) {
	require.Equal(t, "IS_AFTER({Order Date}, '2026-07-01')", IsAfter("Order Date", "2026-07-01").String())
}
