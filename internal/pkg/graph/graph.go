package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"stackview/internal/pkg/scanner"
	"stackview/pkg/constants"
	"stackview/pkg/utils"
)

// Node 资源图节点
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// Edge 资源图边
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph 推断出的资源图, 供前端渲染
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// composeService compose服务定义中本图关心的字段
type composeService struct {
	Image     string    `yaml:"image"`
	DependsOn dependsOn `yaml:"depends_on"`
}

// dependsOn 兼容compose的两种depends_on写法: 列表与映射
type dependsOn struct {
	services []string
}

func (d *dependsOn) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		if err := value.Decode(&d.services); err != nil {
			return err
		}
		// 与映射写法一致, 排序保证边的顺序确定
		sort.Strings(d.services)
		return nil
	case yaml.MappingNode:
		var m map[string]yaml.Node
		if err := value.Decode(&m); err != nil {
			return err
		}
		d.services = lo.Keys(m)
		sort.Strings(d.services)
		return nil
	default:
		return nil
	}
}

// Build 从扫描结果推断资源图
// 解析失败的文件降级为裸文件节点, 与扫描器一样从不硬失败
func Build(analysis *scanner.Analysis) *Graph {
	g := &Graph{
		Nodes: []Node{},
		Edges: []Edge{},
	}

	if analysis == nil {
		return g
	}

	if analysis.ComposeFile != nil {
		buildComposeNodes(g, analysis.ComposeFile.Name, analysis.ComposeFile.Content)
	}

	for _, f := range analysis.Dockerfiles {
		g.Nodes = append(g.Nodes, Node{
			ID:    "build:" + f.Name,
			Label: f.Name,
			Type:  constants.NodeTypeBuild,
		})
	}

	for _, f := range analysis.TerraformFiles {
		g.Nodes = append(g.Nodes, Node{
			ID:    "tf:" + f.Name,
			Label: f.Name,
			Type:  constants.NodeTypeProvisioning,
		})
	}

	for _, f := range analysis.OrchestrationFiles {
		buildManifestNodes(g, f.Name, f.Content)
	}

	return g
}

// buildComposeNodes 将compose服务解析为节点, depends_on解析为边
func buildComposeNodes(g *Graph, filename, content string) {
	var compose struct {
		Services map[string]composeService `yaml:"services"`
	}
	if err := yaml.Unmarshal([]byte(content), &compose); err != nil || len(compose.Services) == 0 {
		// 无法解析时降级为单个文件节点
		g.Nodes = append(g.Nodes, Node{
			ID:    "compose:" + filename,
			Label: filename,
			Type:  constants.NodeTypeService,
		})
		return
	}

	// map遍历无序, 排序保证图的确定性
	names := lo.Keys(compose.Services)
	sort.Strings(names)

	for _, name := range names {
		svc := compose.Services[name]
		label := utils.Condexpr(svc.Image != "", fmt.Sprintf("%s (%s)", name, svc.Image), name)
		g.Nodes = append(g.Nodes, Node{
			ID:    "service:" + name,
			Label: label,
			Type:  constants.NodeTypeService,
		})

		for _, dep := range svc.DependsOn.services {
			g.Edges = append(g.Edges, Edge{
				Source: "service:" + name,
				Target: "service:" + dep,
			})
		}
	}
}

// buildManifestNodes 解析k8s清单（可能是多文档yaml）, 每个文档一个节点
func buildManifestNodes(g *Graph, filename, content string) {
	type manifest struct {
		Kind     string `yaml:"kind"`
		Metadata struct {
			Name string `yaml:"name"`
		} `yaml:"metadata"`
	}

	nodes := []Node{}
	decoder := yaml.NewDecoder(strings.NewReader(content))
	for {
		var m manifest
		if err := decoder.Decode(&m); err != nil {
			break
		}
		if m.Kind == "" {
			continue
		}
		name := m.Metadata.Name
		if name == "" {
			name = filename
		}
		nodes = append(nodes, Node{
			ID:    fmt.Sprintf("k8s:%s/%s", strings.ToLower(m.Kind), name),
			Label: fmt.Sprintf("%s/%s", m.Kind, name),
			Type:  constants.NodeTypeOrchestration,
		})
	}

	// 清单解析不出任何文档时降级为裸文件节点
	if len(nodes) == 0 {
		nodes = append(nodes, Node{
			ID:    "k8s:" + filename,
			Label: filename,
			Type:  constants.NodeTypeOrchestration,
		})
	}

	g.Nodes = append(g.Nodes, nodes...)
}
