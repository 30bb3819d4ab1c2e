package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"voltlab"
	"voltlab/mna/debug"
	"voltlab/types"
)

func main() {
	var (
		circuitPath = flag.String("circuit", "", "电路JSON文件")
		configPath  = flag.String("config", "", "求解参数YAML文件（可选）")
		htmlPath    = flag.String("html", "", "输出HTML求解报告（可选）")
		sweepSpec   = flag.String("sweep", "", "属性扫描: cid:prop:lo:hi:n（可选）")
		sweepPath   = flag.String("sweep-png", "sweep.png", "扫描曲线输出文件")
		measureCID  = flag.String("measure", "", "扫描测量元件ID，默认为被扫元件")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if *circuitPath == "" {
		log.Error("缺少 -circuit 参数")
		os.Exit(2)
	}

	cfg := types.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = voltlab.LoadConfig(*configPath); err != nil {
			log.Error("配置非法", "err", err)
			os.Exit(1)
		}
	}

	data, err := os.ReadFile(*circuitPath)
	if err != nil {
		log.Error("读取电路失败", "err", err)
		os.Exit(1)
	}
	cir, err := voltlab.UnmarshalCircuit(data)
	if err != nil {
		log.Error("电路文件非法", "err", err)
		os.Exit(1)
	}

	res := voltlab.Solve(cir, &cfg)
	printResult(cir, &cfg, res)

	if *htmlPath != "" {
		if err := writeHTML(*htmlPath, cir, res); err != nil {
			log.Error("写出报告失败", "err", err)
			os.Exit(1)
		}
		log.Info("已写出报告", "path", *htmlPath)
	}

	if *sweepSpec != "" {
		if err := runSweep(cir, &cfg, *sweepSpec, *measureCID, *sweepPath); err != nil {
			log.Error("扫描失败", "err", err)
			os.Exit(1)
		}
		log.Info("已写出扫描曲线", "path", *sweepPath)
	}

	if !res.OK {
		os.Exit(1)
	}
}

// printResult 打印求解结果
func printResult(cir *types.Circuit, cfg *types.Config, res *types.SolveResult) {
	if !res.OK {
		fmt.Println("求解失败")
	}
	for _, c := range cir.Components() {
		m := voltlab.ComponentMetrics(res, c, cfg)
		line := fmt.Sprintf("%-20s U=%-8s I=%-8s P=%-8s",
			c.DisplayName(),
			voltlab.FormatSI(m.Vab, "V"),
			voltlab.FormatSI(m.Iab, "A"),
			voltlab.FormatSI(m.P, "W"))
		if m.HasR {
			line += " R=" + voltlab.FormatSI(m.R, "Ω")
		}
		if fl, ok := res.Flags[c.ID]; ok {
			line += " [" + fl + "]"
		}
		fmt.Println(line)
	}
	for _, w := range res.Warnings {
		fmt.Printf("警告[%s] %s\n", w.Kind, w.Message)
	}
}

// writeHTML 写出HTML报告
func writeHTML(path string, cir *types.Circuit, res *types.SolveResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return debug.WriteReport(f, cir, res)
}

// runSweep 解析扫描说明并绘图。
// 测量量默认取被扫元件自身的电流 |Iab|。
func runSweep(cir *types.Circuit, cfg *types.Config, spec, measureCID, path string) error {
	parts := strings.Split(spec, ":")
	if len(parts) != 5 {
		return fmt.Errorf("扫描说明应为 cid:prop:lo:hi:n: %q", spec)
	}
	cid, prop := parts[0], parts[1]
	lo, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return fmt.Errorf("下界非法: %w", err)
	}
	hi, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return fmt.Errorf("上界非法: %w", err)
	}
	n, err := strconv.Atoi(parts[4])
	if err != nil {
		return fmt.Errorf("点数非法: %w", err)
	}
	if measureCID == "" {
		measureCID = cid
	}

	points, err := voltlab.Sweep(cir, cfg, cid, prop, lo, hi, n,
		voltlab.Measure{ComponentID: measureCID, Field: "Iab", Abs: true})
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return voltlab.RenderSweep(f, points, fmt.Sprintf("%s %s 扫描", cid, prop), prop, "I/A")
}
