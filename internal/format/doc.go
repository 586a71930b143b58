// Package format renders parsed trees and query results.
//
// Назначение: текстовые и структурированные представления готовых деревьев.
// Не делает: разбор входа, трансформации деревьев (бинаризация и т.п.).
// Зависимости: internal/tree, gopkg.in/yaml.v3.
package format
