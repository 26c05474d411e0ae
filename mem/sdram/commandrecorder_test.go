package sdram

import (
	"bytes"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/sdramaxi/mem/sdram/signal"
	"github.com/sarchlab/sdramaxi/sim"
)

type tableRecorder struct {
	tables  map[string][]any
	flushed bool
}

func newTableRecorder() *tableRecorder {
	return &tableRecorder{tables: make(map[string][]any)}
}

func (r *tableRecorder) CreateTable(tableName string, _ any) {
	r.tables[tableName] = nil
}

func (r *tableRecorder) InsertData(tableName string, entry any) {
	r.tables[tableName] = append(r.tables[tableName], entry)
}

func (r *tableRecorder) ListTables() []string {
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}

	return names
}

func (r *tableRecorder) Flush() {
	r.flushed = true
}

func (r *tableRecorder) Close() error {
	return nil
}

var _ = Describe("CommandRecorder", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *MockEngine
		recorder *tableRecorder
		hook     *CommandRecorder
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewMockEngine(mockCtrl)
		recorder = newTableRecorder()
		hook = NewCommandRecorder(recorder, engine)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should create the command table", func() {
		Expect(recorder.ListTables()).To(ConsistOf(CommandTableName))
	})

	It("should record issued commands", func() {
		engine.EXPECT().CurrentTime().Return(sim.VTimeInSec(2e-6))

		hook.Func(sim.HookCtx{
			Pos: HookPosCommandIssued,
			Item: signal.Pins{
				CKE:  true,
				Cmd:  signal.CmdWrite,
				Bank: 2,
				Addr: 0x10,
				DQ:   0xbeef,
				DQM:  0b01,
			},
			Detail: uint64(100),
		})

		Expect(recorder.tables[CommandTableName]).To(ConsistOf(CommandEntry{
			Cycle:   100,
			Time:    2e-6,
			Command: signal.CmdWrite.String(),
			Bank:    2,
			Addr:    0x10,
			DQ:      0xbeef,
			DQM:     0b01,
		}))
	})

	It("should ignore other hook positions", func() {
		hook.Func(sim.HookCtx{Pos: sim.HookPosBeforeEvent})

		Expect(recorder.tables[CommandTableName]).To(BeEmpty())
	})
})

var _ = Describe("CommandLogger", func() {
	It("should print issued commands with the cycle", func() {
		buf := new(bytes.Buffer)
		logger := NewCommandLogger(log.New(buf, "", 0))

		logger.Func(sim.HookCtx{
			Pos:    HookPosCommandIssued,
			Item:   signal.Pins{CKE: true, Cmd: signal.CmdRefresh},
			Detail: uint64(7),
		})

		Expect(buf.String()).To(Equal("sdram, cycle 7, REFRESH\n"))
	})
})
