package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/disintegration/imaging"

	"github.com/glid-app/studio/config"
	"github.com/glid-app/studio/dsl"
	"github.com/glid-app/studio/export"
	"github.com/glid-app/studio/layout"
	"github.com/glid-app/studio/logging"
	"github.com/glid-app/studio/media"
	canvasrenderer "github.com/glid-app/studio/renderer/canvas"
	"github.com/glid-app/studio/renderer/pixel"
	"github.com/glid-app/studio/settings"
	"github.com/glid-app/studio/studio"
	"github.com/glid-app/studio/theme"
)

// options 汇总命令行参数。
type options struct {
	input      string
	outDir     string
	configPath string
	debugPath  string
	preview    string
	image      string
	theme      string
	data       any
	watch      bool
}

func main() {
	input := flag.String("in", "examples/launch.compose", "组合文件路径")
	output := flag.String("out", "", "PNG 输出目录（默认取配置文件中的 output_dir）")
	configPath := flag.String("config", settings.DefaultFile, "配置文件路径")
	debug := flag.String("debug", "", "场景调试 JSON 输出路径")
	preview := flag.String("preview", "", "预览 PNG 输出路径（按预览缩放，包含棋盘格）")
	imagePath := flag.String("image", "", "样机截图路径，覆盖组合文件中的 screenshot")
	themeName := flag.String("theme", "", "主题 light/dark，覆盖配置文件")
	dataJSON := flag.String("data", "", "绑定到组合文件的 JSON 数据")
	watchFile := flag.Bool("watch", false, "监听组合文件变化并重新生成")
	flag.Parse()

	opts := options{
		input:      *input,
		outDir:     *output,
		configPath: *configPath,
		debugPath:  *debug,
		preview:    *preview,
		image:      *imagePath,
		theme:      *themeName,
		watch:      *watchFile,
	}
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &opts.data); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, opts); err != nil {
		log.Fatalf("生成失败: %v", err)
	}
}

// run 串联配置、解析、布局、预览与导出。
func run(ctx context.Context, opts options) error {
	cfg, err := settings.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("读取配置失败: %w", err)
	}
	if opts.theme != "" {
		cfg.Theme = opts.theme
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("配置无效: %w", err)
	}
	if opts.outDir == "" {
		opts.outDir = cfg.OutputDir
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}

	comp, err := loadComposition(opts.input, opts.image, opts.data)
	if err != nil {
		return err
	}

	primary := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{Logger: logger})
	fallback := pixel.New(logger)
	defer fallback.Close()
	exp, err := export.New(export.Options{Primary: primary, Fallback: fallback, Products: cfg.Product, Logger: logger})
	if err != nil {
		return err
	}
	sess, err := studio.New(comp, studio.Options{
		Settings:   cfg,
		Theme:      theme.NewStore(cfg.Theme, theme.TerminalDetector),
		Typesetter: primary,
		Exporter:   exp,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}
	defer sess.Close()

	regenerate := func() error { return produce(ctx, sess, primary, opts, logger) }
	if err := regenerate(); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}
	return watch(ctx, opts.input, logging.For(logger, logging.ChannelWatch), func() error {
		next, err := loadComposition(opts.input, opts.image, opts.data)
		if err != nil {
			return err
		}
		if err := sess.Replace(next); err != nil {
			return err
		}
		return regenerate()
	})
}

// produce 写出调试 JSON、预览图与导出文件。
func produce(ctx context.Context, sess *studio.Session, primary *canvasrenderer.Renderer, opts options, logger *slog.Logger) error {
	if opts.debugPath != "" {
		if err := writeDebug(sess.Scene(), opts.debugPath); err != nil {
			return err
		}
	}
	if opts.preview != "" {
		sess.Resize(layout.Size{})
		img, err := sess.Preview(ctx, primary)
		if err != nil {
			return fmt.Errorf("生成预览失败: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(opts.preview), 0o755); err != nil {
			return fmt.Errorf("创建预览目录失败: %w", err)
		}
		if err := imaging.Save(img, opts.preview); err != nil {
			return fmt.Errorf("写入预览失败: %w", err)
		}
		fmt.Printf("已生成预览：%s（缩放 %.3f）\n", opts.preview, sess.Scale())
	}

	res, err := sess.Export(ctx)
	if err != nil {
		return fmt.Errorf("导出失败: %w", err)
	}
	path, err := res.WriteTo(opts.outDir)
	if err != nil {
		return fmt.Errorf("写入 PNG 文件失败: %w", err)
	}
	if res.Primary != nil {
		logger.Warn("已使用兜底渲染器导出", "err", res.Primary)
	}
	fmt.Printf("已生成 PNG：%s（%dx%d，%s）\n", path, res.Width, res.Height, res.Backend)
	return nil
}

// loadComposition 解析组合文件；样机的截图路径相对组合文件所在目录。
func loadComposition(inputPath, imageOverride string, data any) (config.Composition, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("无法打开组合文件 %s: %w", inputPath, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("解析组合文件失败: %w", err)
	}
	comp, err := config.FromDocument(doc, data)
	if err != nil {
		return nil, fmt.Errorf("组合配置无效: %w", err)
	}

	m, ok := comp.(*config.Mockup)
	if !ok {
		return comp, nil
	}
	shot := m.SourcePath
	if imageOverride != "" {
		shot = imageOverride
	} else if shot != "" && !filepath.IsAbs(shot) {
		shot = filepath.Join(filepath.Dir(inputPath), shot)
	}
	if shot == "" {
		return comp, nil
	}
	src, err := media.LoadFile(shot)
	if err != nil {
		return nil, fmt.Errorf("加载截图失败: %w", err)
	}
	m.SourcePath = shot
	m.SetSource(src)
	return m, nil
}

func writeDebug(scene *layout.Scene, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(scene, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
