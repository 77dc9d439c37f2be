package host

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"mshell/internal/core"
)

// ProcessStatus описывает строку вывода ps. Недоступные поля остаются пустыми.
type ProcessStatus struct {
	PID      int32
	State    string
	Priority string
	Name     string
}

// MemoryStats содержит объемы памяти в килобайтах.
type MemoryStats struct {
	Total uint64
	Used  uint64
	Free  uint64
}

// UptimeStats содержит время работы узла и среднюю загрузку.
type UptimeStats struct {
	UptimeSec uint64
	Load      *load.AvgStat
}

// Module предоставляет сведения о процессах и памяти узла.
// Нулевое значение использует gopsutil.
type Module struct {
	Processes func(ctx context.Context, pids []int32) ([]ProcessStatus, error)
	Memory    func(ctx context.Context) (MemoryStats, error)
	Uptime    func(ctx context.Context) (UptimeStats, error)
}

func (m *Module) Name() string { return "host" }

// Init подставляет источники данных по умолчанию.
func (m *Module) Init(ctx context.Context) error {
	if m.Processes == nil {
		m.Processes = listProcesses
	}
	if m.Memory == nil {
		m.Memory = virtualMemory
	}
	if m.Uptime == nil {
		m.Uptime = hostUptime
	}
	return nil
}

// Commands возвращает команды модуля.
func (m *Module) Commands() []core.CommandSpec {
	return []core.CommandSpec{
		{Name: "ps", Handler: m.ps, Description: "Displays the status of processes, usage: ps [pid ...]"},
		{Name: "free", Handler: m.free, Description: "Display the amount of free and used memory in the system, usage: free"},
		{Name: "uptime", Handler: m.uptime, Description: "Show how long the system has been running and the load averages, usage: uptime"},
	}
}

func (m *Module) ps(ctx context.Context, env *core.Env, args []string) error {
	pids := make([]int32, 0, len(args))
	for _, arg := range args {
		pid, err := strconv.ParseInt(arg, 10, 32)
		if err != nil || pid <= 0 {
			return core.Usage("ps [pid ...]")
		}
		pids = append(pids, int32(pid))
	}
	procs, err := m.Processes(ctx, pids)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "%-10s %-10s %-9s %s\n", "TID", "STATUS", "PRIORITY", "KIND")
	for _, p := range procs {
		fmt.Fprintf(env.Out, "%-10d %-10s %-9s %s\n", p.PID, p.State, p.Priority, p.Name)
	}
	return nil
}

func (m *Module) free(ctx context.Context, env *core.Env, args []string) error {
	if len(args) != 0 {
		return core.Usage("free")
	}
	st, err := m.Memory(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "%-12s %-12s %-12s\n", "total", "used", "free")
	fmt.Fprintf(env.Out, "%-12d %-12d %-12d\n", st.Total, st.Used, st.Free)
	return nil
}

func (m *Module) uptime(ctx context.Context, env *core.Env, args []string) error {
	if len(args) != 0 {
		return core.Usage("uptime")
	}
	st, err := m.Uptime(ctx)
	if err != nil {
		return err
	}
	line := "up " + formatUptime(st.UptimeSec)
	if st.Load != nil {
		line += fmt.Sprintf(", load average: %.2f, %.2f, %.2f", st.Load.Load1, st.Load.Load5, st.Load.Load15)
	}
	fmt.Fprintln(env.Out, line)
	return nil
}

func formatUptime(sec uint64) string {
	days := sec / 86400
	hours := sec % 86400 / 3600
	minutes := sec % 3600 / 60
	clock := fmt.Sprintf("%02d:%02d", hours, minutes)
	switch days {
	case 0:
		return clock
	case 1:
		return "1 day, " + clock
	default:
		return fmt.Sprintf("%d days, %s", days, clock)
	}
}

// listProcesses читает процессы через gopsutil; поля, которые не удалось
// прочитать, остаются пустыми.
func listProcesses(ctx context.Context, pids []int32) ([]ProcessStatus, error) {
	var procs []*process.Process
	if len(pids) == 0 {
		all, err := process.ProcessesWithContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read process list: %w", err)
		}
		procs = all
	} else {
		for _, pid := range pids {
			p, err := process.NewProcessWithContext(ctx, pid)
			if err != nil {
				return nil, fmt.Errorf("process %d: %w", pid, core.ErrNotFound)
			}
			procs = append(procs, p)
		}
	}

	out := make([]ProcessStatus, 0, len(procs))
	for _, p := range procs {
		st := ProcessStatus{PID: p.Pid}
		if name, err := p.NameWithContext(ctx); err == nil {
			st.Name = name
		}
		if states, err := p.StatusWithContext(ctx); err == nil && len(states) > 0 {
			st.State = states[0]
		}
		if nice, err := p.NiceWithContext(ctx); err == nil {
			st.Priority = strconv.Itoa(int(nice))
		}
		out = append(out, st)
	}
	if len(pids) == 0 {
		sort.Slice(out, func(i, j int) bool { return out[i].PID < out[j].PID })
	}
	return out, nil
}

func virtualMemory(ctx context.Context) (MemoryStats, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemoryStats{}, fmt.Errorf("memory info: %w", err)
	}
	return MemoryStats{
		Total: vm.Total / 1024,
		Used:  vm.Used / 1024,
		Free:  vm.Available / 1024,
	}, nil
}

func hostUptime(ctx context.Context) (UptimeStats, error) {
	up, err := host.UptimeWithContext(ctx)
	if err != nil {
		return UptimeStats{}, fmt.Errorf("host uptime: %w", err)
	}
	st := UptimeStats{UptimeSec: up}
	// Без load average uptime все равно печатается.
	if avg, err := load.AvgWithContext(ctx); err == nil {
		st.Load = avg
	}
	return st, nil
}
