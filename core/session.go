package core

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/CodMac/level-lens/ast"
	"github.com/CodMac/level-lens/model"
)

// Session 一次分析运行的全部共享状态: 符号表、continuation、诊断、文件。
// 生命周期等于一次运行, 由 processor 创建后传给每一个遍历器。
type Session struct {
	ID            string
	Table         *SymbolTable
	Continuations *Continuations
	Diagnostics   *Diagnostics
	Files         []*FileContext

	pending     map[string]bool                       // 已知会被定义但尚未处理的顶层类型 QN
	classDecls  map[*ast.ClassDecl]*model.ClassSymbol // 声明节点 -> 类符号 (含匿名类体)
	methodDecls map[ast.Node]*model.MethodSymbol      // 方法/构造函数声明 -> 方法符号
	mutex       sync.RWMutex
}

func NewSession() *Session {
	return &Session{
		ID:            uuid.NewString(),
		Table:         NewSymbolTable(),
		Continuations: NewContinuations(),
		Diagnostics:   NewDiagnostics(),
		pending:       make(map[string]bool),
		classDecls:    make(map[*ast.ClassDecl]*model.ClassSymbol),
		methodDecls:   make(map[ast.Node]*model.MethodSymbol),
	}
}

// AddFile 注册文件上下文; Files 始终按路径排序, 保证各遍的处理顺序稳定
func (s *Session) AddFile(fc *FileContext) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.Files = append(s.Files, fc)
	sort.SliceStable(s.Files, func(i, j int) bool { return s.Files[i].FilePath < s.Files[j].FilePath })
}

// ==========================================
// 1. 尚未处理的类型 ("not yet parsed" 集合)
// ==========================================

func (s *Session) MarkPending(qn string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.pending[qn] = true
}

func (s *Session) ClearPending(qn string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.pending, qn)
}

func (s *Session) IsPending(qn string) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.pending[qn]
}

// PendingNames 仍未被处理的类型 (排序后)
func (s *Session) PendingNames() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	names := make([]string, 0, len(s.pending))
	for n := range s.pending {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ==========================================
// 2. 声明节点与符号的对应关系
// ==========================================

func (s *Session) BindClass(decl *ast.ClassDecl, c *model.ClassSymbol) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.classDecls[decl] = c
}

func (s *Session) ClassFor(decl *ast.ClassDecl) *model.ClassSymbol {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.classDecls[decl]
}

func (s *Session) BindMethod(decl ast.Node, m *model.MethodSymbol) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.methodDecls[decl] = m
}

func (s *Session) MethodFor(decl ast.Node) *model.MethodSymbol {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.methodDecls[decl]
}
