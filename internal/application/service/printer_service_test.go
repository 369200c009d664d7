package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/counter-billing/pkg/printer"
)

func TestPrinterService_GetStatus(t *testing.T) {
	formatter := NewReceiptFormatter(testHeader())

	none := NewPrinterService(printer.NewNullPrinter(), printer.TypeNone, formatter, nil).GetStatus()
	assert.False(t, none.Configured)
	assert.False(t, none.Connected)

	network := NewPrinterService(&recordingPrinter{connected: true}, printer.TypeNetwork, formatter, nil).GetStatus()
	assert.True(t, network.Configured)
	assert.True(t, network.Connected)
	assert.Equal(t, printer.TypeNetwork, network.Type)
}

func TestPrinterService_PrintReceipt(t *testing.T) {
	p := &recordingPrinter{}
	svc := NewPrinterService(p, printer.TypeFile, NewReceiptFormatter(testHeader()), nil)
	doc := svc.formatter.Format(goldenSnapshot(t), 4, fixedTime, "POS")

	require.NoError(t, svc.PrintReceipt(doc))

	require.Len(t, p.jobs, 1)
	assert.Equal(t, RenderESCPOS(doc), p.jobs[0])
}

func TestPrinterService_PrintReceiptFailure(t *testing.T) {
	svc := NewPrinterService(&recordingPrinter{err: errPaperOut}, printer.TypeUSB, NewReceiptFormatter(testHeader()), nil)
	doc := svc.formatter.Format(goldenSnapshot(t), 4, fixedTime, "POS")

	err := svc.PrintReceipt(doc)

	assert.ErrorIs(t, err, errPaperOut)
}

func TestPrinterService_TestPrint(t *testing.T) {
	p := &recordingPrinter{}
	svc := NewPrinterService(p, printer.TypeFile, NewReceiptFormatter(testHeader()), nil)

	doc, err := svc.TestPrint(fixedTime)

	require.NoError(t, err)
	require.Len(t, p.jobs, 1)
	assert.True(t, bytes.Contains(p.jobs[0], []byte("Test Item 2")))
	assert.Contains(t, RenderText(doc), "Counter: TEST")
	assert.Contains(t, RenderText(doc), "You have saved Rs. 2.00")
}

func TestPrinterService_TestPrintFailureReturnsReceipt(t *testing.T) {
	svc := NewPrinterService(&recordingPrinter{err: errPaperOut}, printer.TypeUSB, NewReceiptFormatter(testHeader()), nil)

	doc, err := svc.TestPrint(fixedTime)

	assert.Error(t, err)
	assert.NotNil(t, doc)
}
