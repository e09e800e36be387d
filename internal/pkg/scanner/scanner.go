package scanner

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"stackview/internal/pkg/githost"
	"stackview/pkg/constants"
)

// HostClient 扫描所需的GitHub内容接口
type HostClient interface {
	ListDirectory(ctx context.Context, owner, repo, path, ref string) ([]githost.File, error)
	ReadFile(ctx context.Context, owner, repo, path, ref string) (*githost.File, error)
}

// Analysis 仓库根目录基础设施文件分析结果
type Analysis struct {
	HasCompose         bool           `json:"has_compose"`
	HasDockerfile      bool           `json:"has_dockerfile"`
	HasTerraform       bool           `json:"has_terraform"`
	HasOrchestration   bool           `json:"has_orchestration"`
	ComposeFile        *githost.File  `json:"compose_file,omitempty"`
	Dockerfiles        []githost.File `json:"dockerfiles,omitempty"`
	TerraformFiles     []githost.File `json:"terraform_files,omitempty"`
	OrchestrationFiles []githost.File `json:"orchestration_files,omitempty"`
}

// Categories 命中的基础设施类别, 按规则顺序
func (a *Analysis) Categories() []string {
	var categories []string
	if a.HasCompose {
		categories = append(categories, constants.InfraCategoryCompose)
	}
	if a.HasDockerfile {
		categories = append(categories, constants.InfraCategoryDockerfile)
	}
	if a.HasTerraform {
		categories = append(categories, constants.InfraCategoryTerraform)
	}
	if a.HasOrchestration {
		categories = append(categories, constants.InfraCategoryOrchestration)
	}
	return categories
}

// FileError 扫描过程中单个文件的失败记录
type FileError struct {
	Path string `json:"path"`
	Err  string `json:"error"`
}

// Result 扫描结果
// 扫描是尽力而为的: 任何失败都中止后续处理, 但已累积的结果照常返回,
// 失败本身记录在Errors中由调用方决定如何展示
type Result struct {
	Analysis Analysis    `json:"analysis"`
	Errors   []FileError `json:"errors,omitempty"`
}

// Scanner 仓库基础设施扫描器
type Scanner struct {
	client HostClient
	logger *zap.Logger
}

// New 创建扫描器
func New(client HostClient, logger *zap.Logger) *Scanner {
	return &Scanner{
		client: client,
		logger: logger,
	}
}

// Scan 扫描仓库根目录, 按命名规则识别基础设施文件
// 不返回Go error: 扫描是建议性的, 部分结果优于硬失败
func (s *Scanner) Scan(ctx context.Context, owner, repo, ref string) *Result {
	result := &Result{}

	entries, err := s.client.ListDirectory(ctx, owner, repo, "", ref)
	if err != nil {
		s.logger.Warn("列出仓库根目录失败, 扫描中止",
			zap.String("repo", owner+"/"+repo), zap.Error(err))
		result.Errors = append(result.Errors, FileError{Path: "/", Err: err.Error()})
		return result
	}

	// 逐项分类; 各规则独立判断, 同一文件可命中多条规则
	for _, entry := range entries {
		// 规则1: docker-compose文件, 精确匹配, 后者覆盖前者
		if entry.Name == "docker-compose.yml" || entry.Name == "docker-compose.yaml" {
			result.Analysis.HasCompose = true
			file, err := s.fetch(ctx, owner, repo, entry.Path, ref, result)
			if err != nil {
				return result
			}
			result.Analysis.ComposeFile = file
		}

		// 规则2: Dockerfile 或 Dockerfile.* 前缀
		if entry.Name == "Dockerfile" || strings.HasPrefix(entry.Name, "Dockerfile.") {
			result.Analysis.HasDockerfile = true
			file, err := s.fetch(ctx, owner, repo, entry.Path, ref, result)
			if err != nil {
				return result
			}
			result.Analysis.Dockerfiles = append(result.Analysis.Dockerfiles, *file)
		}

		// 规则3: .tf 后缀
		if strings.HasSuffix(entry.Name, ".tf") {
			result.Analysis.HasTerraform = true
			file, err := s.fetch(ctx, owner, repo, entry.Path, ref, result)
			if err != nil {
				return result
			}
			result.Analysis.TerraformFiles = append(result.Analysis.TerraformFiles, *file)
		}

		// 规则4: 名称包含 k8s 或 kubernetes（区分大小写）
		// 目录只标记不抓取, 也不递归（浅扫描, 嵌套的基础设施目录不可见）
		if strings.Contains(entry.Name, "k8s") || strings.Contains(entry.Name, "kubernetes") {
			result.Analysis.HasOrchestration = true
			if entry.Type == "file" {
				file, err := s.fetch(ctx, owner, repo, entry.Path, ref, result)
				if err != nil {
					return result
				}
				result.Analysis.OrchestrationFiles = append(result.Analysis.OrchestrationFiles, *file)
			}
		}
	}

	return result
}

// fetch 依次抓取单个文件, 失败时记录并让调用方中止扫描
func (s *Scanner) fetch(ctx context.Context, owner, repo, path, ref string, result *Result) (*githost.File, error) {
	file, err := s.client.ReadFile(ctx, owner, repo, path, ref)
	if err != nil {
		s.logger.Warn("读取基础设施文件失败, 扫描中止",
			zap.String("repo", owner+"/"+repo), zap.String("path", path), zap.Error(err))
		result.Errors = append(result.Errors, FileError{Path: path, Err: err.Error()})
		return nil, err
	}
	return file, nil
}
