package importer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGridFromCSV_CommaSeparated(t *testing.T) {
	data := []byte("Producto,Precio,Cod\nCable,\"1.500,00\",C1\n")
	grid, err := GridFromCSV(data)
	require.NoError(t, err)
	require.Len(t, grid, 2)
	assert.Equal(t, []string{"Producto", "Precio", "Cod"}, grid[0])
	assert.Equal(t, []string{"Cable", "1.500,00", "C1"}, grid[1])
}

func TestGridFromCSV_SniffsSemicolon(t *testing.T) {
	data := []byte("Producto;Precio;Cod\nCable;1.500,00;C1\n")
	grid, err := GridFromCSV(data)
	require.NoError(t, err)
	require.Len(t, grid, 2)
	assert.Equal(t, []string{"Cable", "1.500,00", "C1"}, grid[1])
}

func TestGridFromCSV_RaggedRows(t *testing.T) {
	data := []byte("Producto,Precio\nCable,100,extra\nMouse\n")
	grid, err := GridFromCSV(data)
	require.NoError(t, err)
	assert.Len(t, grid, 3)
}

func TestGridFromXLSX_RoundTrip(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Producto", "Precio"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Cable", "1.500,00"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	grid, err := GridFromXLSX(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, grid, 2)
	assert.Equal(t, "Cable", grid[1][0])
	assert.Equal(t, "1.500,00", grid[1][1])
}

func TestGridFromXLSX_InvalidData(t *testing.T) {
	_, err := GridFromXLSX([]byte("no es un xlsx"))
	assert.Error(t, err)
}
