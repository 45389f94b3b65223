// scheduler-cli 是一个一次性命令行工具：读入 Preferences/Availability/
// To-fill 三张 CSV 表，求解一次排班，把结果表打印到标准输出。对应
// original_source/modules/parse_data.py 的 __main__ 块（读三个 CSV、调用
// create_schedule、报告行数），但用法从脚本顶部的硬编码文件名换成了
// flag 传参。
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/shiftsat/shiftsat/parser"
	"github.com/shiftsat/shiftsat/pkg/logger"
	"github.com/shiftsat/shiftsat/scheduler"
)

func main() {
	preferencesPath := flag.String("preferences", "preferences.csv", "Preferences 表 CSV 路径")
	availabilityPath := flag.String("availability", "availability_report.csv", "Availability 表 CSV 路径")
	toFillPath := flag.String("to-fill", "to_fill.csv", "To-fill 表 CSV 路径")
	maxTimeSeconds := flag.Float64("solver-max-time", 10, "CP-SAT 求解时间上限（秒）")
	seed := flag.Int64("solver-seed", 0, "CP-SAT 随机种子")
	logLevel := flag.String("log-level", "info", "日志级别")
	flag.Parse()

	logger.Init(logger.Config{Level: *logLevel, Format: "console"})

	preferencesFile, err := os.Open(*preferencesPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *preferencesPath).Msg("打开 Preferences 表失败")
	}
	defer preferencesFile.Close()

	employees, err := parser.ParsePreferences(preferencesFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("解析 Preferences 表失败")
	}

	availabilityFile, err := os.Open(*availabilityPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *availabilityPath).Msg("打开 Availability 表失败")
	}
	defer availabilityFile.Close()

	if err := parser.ParseAvailability(availabilityFile, employees); err != nil {
		logger.Fatal().Err(err).Msg("解析 Availability 表失败")
	}

	toFillFile, err := os.Open(*toFillPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *toFillPath).Msg("打开 To-fill 表失败")
	}
	defer toFillFile.Close()

	requirements, err := parser.ParseToFill(toFillFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("解析 To-fill 表失败")
	}

	fmt.Printf("Employees: %d\n", len(employees))
	fmt.Printf("To Fill: %d rows\n", len(requirements))

	opts := scheduler.DefaultOptions()
	opts.Solve.MaxTimeSeconds = *maxTimeSeconds
	opts.Solve.Seed = *seed

	schedule, err := scheduler.CreateSchedule(scheduler.Input{
		Employees:    employees,
		Requirements: requirements,
	}, opts)
	if err != nil {
		logger.Fatal().Err(err).Msg("排班求解失败")
	}

	fmt.Printf("Run ID: %s\n", schedule.RunID)
	fmt.Printf("Entries: %d\n", len(schedule.Entries))
	for _, e := range schedule.Entries {
		fmt.Printf("  %-24s %-16s %s -> %s\n",
			e.EmployeeName, e.Position,
			e.Shift.Start.Format("Jan 2 15:04"), e.Shift.End.Format("Jan 2 15:04"))
	}

	fmt.Println("Done!")
}
